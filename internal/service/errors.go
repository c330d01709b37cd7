package service

import "errors"

// ==================== 错误定义 ====================

// 业务错误按五类划分：未认证 / 无权限 / 不存在 / 冲突 / 参数非法
// Controller 层用 errors.Is 映射成稳定的 HTTP 状态码
var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrForbidden          = errors.New("无权访问该资源")

	ErrShopNotFound    = errors.New("店铺不存在")
	ErrBloggerNotFound = errors.New("博主不存在")
	ErrProductNotFound = errors.New("商品不存在")
	ErrOrderNotFound   = errors.New("订单不存在")
	ErrLinkNotFound    = errors.New("推广链接不存在")

	ErrEmailExists = errors.New("邮箱已被注册")

	ErrInvalidQuantity = errors.New("数量必须大于 0")
	ErrInvalidPrice    = errors.New("单价不能为负数")
	ErrInvalidStatus   = errors.New("非法的订单状态")
	ErrOrderFinalized  = errors.New("订单已处于终态，不可再迁移")
)
