package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ledger/internal/model"
	"ledger/internal/service"
)

// patchUserRequest is the PATCH body; the avatar key is managed by the avatar endpoints.
type patchUserRequest struct {
	Email         *string `json:"email,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
}

// ListUsers returns one page of users, newest first.
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Param		page	query		int	false	"zero-based page"
//	@Param		size	query		int	false	"page size"
//	@Success	200		{object}	service.UserListResult
//	@Failure	400		{object}	errorPayload
//	@Router		/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		size, err := strconv.Atoi(c.Query("size", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}

		res, err := svc.List(c.UserContext(), page, size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateUser registers a new user.
//
//	@Summary	Register user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		service.RegisterInput	true	"user"
//	@Success	201		{object}	model.User
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/users [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// GetUser returns a user by id.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"user uuid"
//	@Success	200	{object}	model.User
//	@Failure	400	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// LookupUser finds a user by email.
//
//	@Summary	Find user by email
//	@Tags		users
//	@Produce	json
//	@Param		email	query		string	true	"email"
//	@Success	200		{object}	model.User
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/users/lookup [get]
func LookupUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.GetByEmail(c.UserContext(), c.Query("email"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// CheckUnique reports whether an id/email pair is free.
//
//	@Summary	Check uniqueness
//	@Tags		users
//	@Produce	json
//	@Param		id		query		string	true	"user uuid"
//	@Param		email	query		string	true	"email"
//	@Success	200		{object}	map[string]bool
//	@Failure	400		{object}	errorPayload
//	@Router		/users/unique [get]
func CheckUnique(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unique, err := svc.IsUnique(c.UserContext(), c.Query("id"), c.Query("email"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"unique": unique})
	}
}

// UpdateUser applies a partial update.
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"user uuid"
//	@Param		body	body		patchUserRequest	true	"fields to change"
//	@Success	200		{object}	model.User
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/users/{id} [patch]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req patchUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Update(c.UserContext(), c.Params("id"), model.UpdateUser{
			Email:         req.Email,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Phone:         req.Phone,
			EmailVerified: req.EmailVerified,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// DeleteUser removes a user and its avatar.
//
//	@Summary	Delete user
//	@Tags		users
//	@Param		id	path	string	true	"user uuid"
//	@Success	204
//	@Failure	400	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/users/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadAvatar stores the avatar image (multipart/form-data, field name: file).
//
//	@Summary	Upload avatar
//	@Tags		users
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		string	true	"user uuid"
//	@Param		file	formData	file	true	"image"
//	@Success	200		{object}	model.User
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/users/{id}/avatar [put]
func UploadAvatar(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		u, err := svc.UploadAvatar(c.UserContext(), c.Params("id"), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// AvatarRedirect sends the client to a presigned download URL.
//
//	@Summary	Download avatar
//	@Tags		users
//	@Param		id	path	string	true	"user uuid"
//	@Success	302
//	@Failure	404	{object}	errorPayload
//	@Router		/users/{id}/avatar [get]
func AvatarRedirect(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.AvatarURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}
