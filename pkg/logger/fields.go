package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldBookmarkID 书签 ID 字段
	FieldBookmarkID = "bookmarkId"

	// FieldNotificationID 通知 ID 字段
	FieldNotificationID = "notificationId"

	// FieldAlarmID 闹钟 ID 字段
	FieldAlarmID = "alarmId"

	// FieldMode 时间筛选模式字段
	FieldMode = "mode"

	// FieldDomain 书签域名字段
	FieldDomain = "domain"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"
)
