// Package handlers provides HTTP request handling
package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/internal/logger"
	"github.com/celestiaorg/hypermedia/internal/services"
)

// Common error messages
const (
	ErrMsgInvalidReqBody     = "Invalid request body"
	ErrMsgNegativePagination = "Page must be a positive number from 1"
	ErrMsgPageTooLarge       = "Page is out of range"
	ErrMsgLinkFailed         = "Failed to build links"
)

// Project error messages
const (
	ErrMsgProjNameRequired = "Project name is required"
	ErrMsgInvalidProjectID = "Invalid project id"
	ErrMsgProjCreateFailed = "Failed to create project"
	ErrMsgProjListFailed   = "Failed to list projects"
	ErrMsgProjDeleteFailed = "Failed to delete project"
	ErrMsgProjGetFailed    = "Failed to get project"
)

// Task error messages
const (
	ErrMsgTaskNameRequired  = "Task name is required"
	ErrMsgInvalidTaskID     = "Invalid task id"
	ErrMsgTaskCreateFailed  = "Failed to create task"
	ErrMsgTaskListFailed    = "Failed to list tasks"
	ErrMsgTaskGetFailed     = "Failed to get task"
	ErrMsgTaskStatusFailed  = "Failed to update task status"
	ErrMsgTaskStatusReqd    = "Status is required"
	ErrMsgTaskStatusInvalid = "Invalid task status"
)

// serviceError maps service errors to HTTP errors. Unexpected errors are
// logged and answered with msg.
func serviceError(err error, msg string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		logger.Errorf("%s: %v", msg, err)
		return fiber.NewError(fiber.StatusInternalServerError, msg)
	}
}

// linkError logs a failure to build links and hides the details from clients
func linkError(err error) error {
	logger.Errorf("%s: %v", ErrMsgLinkFailed, err)
	return fiber.NewError(fiber.StatusInternalServerError, ErrMsgLinkFailed)
}
