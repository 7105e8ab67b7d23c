package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/middleware"
)

// ProgramController handles the public program catalog
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// ListPrograms returns every program with budgets and sections
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	programs, err := c.programService.ListAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"programs": programs})
}

// GetProgram returns a single program by its external identifier
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	program, err := c.programService.GetByExternalID(ctx, ctx.Param("programId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, program)
}
