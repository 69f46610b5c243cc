package controller

import (
	"student_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// paramID reads a positive numeric path parameter, answering 400 when it
// is missing or malformed.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}

func pageParams(ctx *gin.Context) (int, int) {
	return util.ParsePage(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))
}
