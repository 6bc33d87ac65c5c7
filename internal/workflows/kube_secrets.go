package workflows

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PolarWolf314/ejgo/internal/audit"
	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
	"github.com/PolarWolf314/ejgo/internal/render"
)

// KubeSecretsOptions configures the kube-secrets workflow.
type KubeSecretsOptions struct {
	KeyOptions

	// File is the secrets file to read.
	File string
}

// KubeSecretsResult contains the rendered manifests.
type KubeSecretsResult struct {
	// Data is a multi-document YAML stream of v1 Secrets.
	Data []byte

	// Names lists the Secrets in output order.
	Names []string

	Warnings []string
	AuditErr error
}

// KubeSecrets decrypts a secrets file and renders each object under its
// top-level "kubernetes" member as a v1 Secret manifest.
//
// Returns ErrSectionNotFound if the file has no kubernetes object.
func KubeSecrets(ctx context.Context, opts KubeSecretsOptions) (*KubeSecretsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := loadAndDecrypt(opts.File, opts.KeyOptions)
	if err != nil {
		return nil, err
	}

	section, ok := d.file.Object(render.KubeSection)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q object", kerrors.ErrSectionNotFound, opts.File, render.KubeSection)
	}

	manifests := render.KubeSecrets(section)

	var buf bytes.Buffer
	if err := render.WriteManifests(&buf, manifests); err != nil {
		return nil, err
	}

	result := &KubeSecretsResult{
		Data:     buf.Bytes(),
		Warnings: d.warnings,
		AuditErr: d.record(audit.OpKubeSecrets, opts.File),
	}
	for _, s := range manifests {
		result.Names = append(result.Names, s.Name)
	}
	return result, nil
}
