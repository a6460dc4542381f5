package consts

const (
	// TokenCookieName 登录令牌所在的 Cookie
	TokenCookieName = "token"
	// NextParam 登录后跳回的地址参数
	NextParam = "next"
)

// gin.Context / context.Context 中的键
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxToken    = "token"
)
