package errorx

import (
	"errors"
	"fmt"
)

// CodeError 带业务错误码的自定义错误
// 实现了 error 接口，支持 %w 包装底层错误，且能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息
	cause error  // 被包装的底层错误
}

// Error 实现 Go 标准 error 接口
// 当存在底层错误时，返回格式为 "消息: 底层错误"；否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 实现 errors.Unwrap 接口，支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is 按错误码比较，使 errors.Is(err, errorx.ErrForbidden) 对 Wrap 后的错误同样成立
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeNotFound, "关系不存在")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
// 用法: errorx.Wrapf(err, CodeNotFound, "关系 %s 不存在", relationshipId)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy // 默认返回服务繁忙
}

// 业务状态码常量定义
const (
	CodeSuccess      = 1000 // 成功
	CodeInvalidParam = 1001 // 请求参数错误
	CodeUserNotExist = 1003 // 用户不存在
	CodeServerBusy   = 1005 // 服务繁忙
	CodeUnauthorized = 1006 // 未授权/认证失败
	CodeNotFound     = 1008 // 资源不存在
	CodeDBError      = 1010 // 数据库错误
	CodeCacheError   = 1011 // 缓存错误

	// 好友关系
	CodeForbidden             = 2001 // 无权操作该关系
	CodeInvalidState          = 2002 // 关系状态不允许该操作
	CodeSelfRequest           = 2003 // 不能向自己发送申请
	CodeAlreadyFriends        = 2004 // 已经是好友
	CodeRequestAlreadyPending = 2005 // 申请已存在，等待处理
	CodeBlocked               = 2006 // 已被拉黑
	CodeDuplicateRelationship = 2007 // 该用户对已存在关系记录
	CodeInvalidPair           = 2008 // 关系双方不能是同一用户

	// 外部依赖
	CodeUnavailable = 3001 // 外部服务暂不可用
)

// 预定义常用错误实例
// 这些实例既可直接返回，也可用于 errors.Is 比较
var (
	ErrInvalidParam = New(CodeInvalidParam, "请求参数错误")
	ErrServerBusy   = New(CodeServerBusy, "服务繁忙")
	ErrNotFound     = New(CodeNotFound, "资源不存在")

	ErrForbidden             = New(CodeForbidden, "无权操作该好友关系")
	ErrInvalidState          = New(CodeInvalidState, "该申请已被处理")
	ErrSelfRequest           = New(CodeSelfRequest, "不能添加自己为好友")
	ErrAlreadyFriends        = New(CodeAlreadyFriends, "你们已经是好友")
	ErrRequestAlreadyPending = New(CodeRequestAlreadyPending, "好友申请已发送，请等待对方处理")
	ErrBlocked               = New(CodeBlocked, "无法向该用户发送好友申请")
	ErrDuplicateRelationship = New(CodeDuplicateRelationship, "好友关系已存在")
	ErrInvalidPair           = New(CodeInvalidPair, "好友关系双方不能相同")

	ErrUnavailable = New(CodeUnavailable, "服务暂不可用")
)

// IsNotFound 检查错误是否为"未找到"类型（包括 gorm.ErrRecordNotFound）
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}
