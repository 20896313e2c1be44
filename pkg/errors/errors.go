package errors

import "errors"

// ErrAlreadyReviewed 提交状态冲突：该提交已被其他导师审批
var ErrAlreadyReviewed = errors.New("该提交已被审批，状态不可再变更")
