package workflows

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PolarWolf314/ejgo/internal/audit"
	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
	"github.com/PolarWolf314/ejgo/internal/render"
)

// EnvOptions configures the env workflow.
type EnvOptions struct {
	KeyOptions

	// File is the secrets file to read.
	File string

	// TrimUnderscore strips one leading underscore from variable names.
	TrimUnderscore bool
}

// EnvResult contains the rendered exports.
type EnvResult struct {
	// Data holds one "export NAME=VALUE" line per variable.
	Data []byte

	// Names lists the exported variables in output order.
	Names []string

	Warnings []string
	AuditErr error
}

// Env decrypts a secrets file and renders the direct string members of its
// top-level "environment" object as shell exports.
//
// Returns ErrSectionNotFound if the file has no environment object.
func Env(ctx context.Context, opts EnvOptions) (*EnvResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := loadAndDecrypt(opts.File, opts.KeyOptions)
	if err != nil {
		return nil, err
	}

	section, ok := d.file.Object(render.EnvSection)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q object", kerrors.ErrSectionNotFound, opts.File, render.EnvSection)
	}

	vars := render.EnvVars(section, render.EnvOptions{TrimUnderscore: opts.TrimUnderscore})

	var buf bytes.Buffer
	if err := render.Env(&buf, vars); err != nil {
		return nil, err
	}

	result := &EnvResult{
		Data:     buf.Bytes(),
		Warnings: d.warnings,
		AuditErr: d.record(audit.OpEnv, opts.File),
	}
	for _, v := range vars {
		result.Names = append(result.Names, v.Name)
	}
	return result, nil
}
