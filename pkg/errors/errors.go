package errors

import "errors"

// ErrGuardFailed 条件写未命中任何行：守卫条件不满足或记录不存在。
// 名额计数、余额扣减等读改写操作以单条带守卫的 UPDATE 下推到数据库，
// 并发竞争下的失败统一表现为该错误，由 Service 层翻译为具体业务错误。
var ErrGuardFailed = errors.New("条件更新未生效，请刷新后重试")
