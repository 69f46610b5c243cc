package controller

import (
	"student_dashboard_backend/internal/service"
	"student_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnnouncementController struct {
	Service *service.AnnouncementService
}

func NewAnnouncementController(svc *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{Service: svc}
}

// @Summary Create an announcement
// @Tags Admin announcements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AnnouncementReq true "Announcement"
// @Success 201 {object} util.Response{data=model.Announcement}
// @Failure 400 {object} util.Response
// @Router /api/admin/announcements [post]
func (c *AnnouncementController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.AnnouncementReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary List all announcements
// @Tags Admin announcements
// @Produce json
// @Security ApiKeyAuth
// @Param course query string false "Course"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/announcements [get]
func (c *AnnouncementController) ListAll(ctx *gin.Context) {
	page, limit := pageParams(ctx)

	items, total, err := c.Service.ListForAdmin(ctx.Request.Context(), ctx.Query("course"), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// @Summary Update an announcement
// @Tags Admin announcements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Announcement ID"
// @Param body body service.AnnouncementUpdateReq true "Changes"
// @Success 200 {object} util.Response{data=model.Announcement}
// @Failure 404 {object} util.Response
// @Router /api/admin/announcements/{id} [put]
func (c *AnnouncementController) Update(ctx *gin.Context) {
	var req service.AnnouncementUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary Delete an announcement
// @Tags Admin announcements
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/announcements/{id} [delete]
func (c *AnnouncementController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// @Summary Upload an announcement attachment
// @Tags Admin announcements
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Announcement ID"
// @Param file formData file true "Attachment (pdf, image or text, max 10MB)"
// @Success 200 {object} util.Response{data=model.Announcement}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/announcements/{id}/attachment [post]
func (c *AnnouncementController) UploadAttachment(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if header.Size > util.MaxAttachmentSize {
		util.BadRequest(ctx, "attachment too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	a, err := c.Service.UploadAttachment(ctx.Request.Context(), ctx.Param("id"), header.Filename, file, header.Size)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary Announcements visible to students
// @Description Published and not expired, newest first.
// @Tags Announcements
// @Produce json
// @Security ApiKeyAuth
// @Param course query string false "Course"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/announcements [get]
func (c *AnnouncementController) ListVisible(ctx *gin.Context) {
	page, limit := pageParams(ctx)

	items, total, err := c.Service.ListVisible(ctx.Request.Context(), ctx.Query("course"), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}
