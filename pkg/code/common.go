package code

// 成功码
var (
	Success = NewSuss(200, lang{en: "success", zh_cn: "成功"})
)

// 通用错误码
var (
	ErrorServerInternal  = NewError(10000, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, lang{en: "Invalid params", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10002, lang{en: "Not found API", zh_cn: "找不到API"})
	ErrorTooManyRequests = NewError(10003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(10004, lang{en: "Database query error", zh_cn: "数据库查询错误"})
)

// 认证与授权错误码
var (
	ErrorNotUserAuthToken     = NewError(20001, lang{en: "User auth token is missing", zh_cn: "用户认证Token缺失"})
	ErrorInvalidUserAuthToken = NewError(20002, lang{en: "User auth token is invalid", zh_cn: "用户认证Token无效"})
	ErrorNotAdminAuth         = NewError(20003, lang{en: "Admin access required", zh_cn: "需要管理员权限"})
	ErrorNoPermission         = NewError(20004, lang{en: "No permission for this record", zh_cn: "没有该记录的操作权限"})
	ErrorTokenGenerate        = NewError(20005, lang{en: "Token generate failed", zh_cn: "Token生成失败"})
)

// 用户错误码
var (
	ErrorUserRegister            = NewError(21001, lang{en: "User register failed", zh_cn: "用户注册失败"})
	ErrorUserAlreadyExists       = NewError(21002, lang{en: "Username already exists", zh_cn: "用户名已存在"})
	ErrorUserEmailAlreadyExists  = NewError(21003, lang{en: "Email already registered", zh_cn: "邮箱已被注册"})
	ErrorUserUsernameNotValid    = NewError(21004, lang{en: "Username is not valid", zh_cn: "用户名不合法"})
	ErrorPasswordNotValid        = NewError(21005, lang{en: "Password is not valid", zh_cn: "密码不合法"})
	ErrorUserLoginPasswordFailed = NewError(21006, lang{en: "Invalid credentials", zh_cn: "用户名或密码错误"})
	ErrorUserNotFound            = NewError(21007, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserDeleteAdmin         = NewError(21008, lang{en: "Cannot delete admin user", zh_cn: "不能删除管理员用户"})
	ErrorUserRegisterIsDisable   = NewError(21009, lang{en: "User register is disabled", zh_cn: "用户注册已关闭"})
)

// 书签错误码
var (
	ErrorBookmarkURLEmpty = NewError(22001, lang{en: "Bookmark url is empty", zh_cn: "书签链接为空"})
	ErrorBookmarkNotFound = NewError(22002, lang{en: "Bookmark not found", zh_cn: "书签不存在"})
	ErrorBookmarkCreate   = NewError(22003, lang{en: "Bookmark create failed", zh_cn: "书签创建失败"})
	ErrorBookmarkUpdate   = NewError(22004, lang{en: "Bookmark update failed", zh_cn: "书签更新失败"})
	ErrorBookmarkDelete   = NewError(22005, lang{en: "Bookmark delete failed", zh_cn: "书签删除失败"})
	ErrorBookmarkDate     = NewError(22006, lang{en: "Bookmark date is not valid", zh_cn: "书签日期不合法"})
)

// 通知错误码
var (
	ErrorNotificationNotFound = NewError(23001, lang{en: "Notification not found", zh_cn: "通知不存在"})
	ErrorNotificationAppend   = NewError(23002, lang{en: "Notification append failed", zh_cn: "通知写入失败"})
	ErrorNotificationMarkRead = NewError(23003, lang{en: "Notification mark read failed", zh_cn: "通知标记已读失败"})
)

// 闹钟错误码
var (
	ErrorAlarmTimeEmpty    = NewError(24001, lang{en: "Alarm time is empty", zh_cn: "闹钟时间为空"})
	ErrorAlarmTimeNotValid = NewError(24002, lang{en: "Alarm time is not valid", zh_cn: "闹钟时间不合法"})
	ErrorAlarmNotFound     = NewError(24003, lang{en: "Alarm not found", zh_cn: "闹钟不存在"})
	ErrorAlarmCreate       = NewError(24004, lang{en: "Alarm create failed", zh_cn: "闹钟创建失败"})
)
