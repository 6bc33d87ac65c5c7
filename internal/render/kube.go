package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v2"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/PolarWolf314/ejgo/internal/document"
)

const (
	// KubeSection is the top-level member holding one object per Secret.
	KubeSection = "kubernetes"

	// NamespaceField sets metadata.namespace of the enclosing Secret.
	NamespaceField = "_namespace"
)

const manifestSeparator = "---\n"

// KubeSecrets builds a Secret for every object member of section, named by
// its key and sorted by name. The direct string members of each object
// become the Secret's data, except ignore-marked ones; nested objects and
// other values are skipped.
func KubeSecrets(section *document.Object) []corev1.Secret {
	names := section.Keys()
	sort.Strings(names)

	var secrets []corev1.Secret
	for _, name := range names {
		child, ok := section.Object(name)
		if !ok {
			continue
		}
		secrets = append(secrets, newSecret(name, child))
	}
	return secrets
}

func newSecret(name string, obj *document.Object) corev1.Secret {
	secret := corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: corev1.SchemeGroupVersion.String(),
			Kind:       "Secret",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
		Data: make(map[string][]byte),
	}

	if ns, ok := obj.String(NamespaceField); ok {
		secret.Namespace = ns
	}

	for _, key := range obj.Keys() {
		if document.IsIgnored(key) {
			continue
		}
		if value, ok := obj.String(key); ok {
			secret.Data[key] = []byte(value)
		}
	}
	return secret
}

// manifest is the rendered form of a Secret. Fields are written in
// declaration order, and server-populated metadata such as
// creationTimestamp is left out so manifests diff cleanly.
type manifest struct {
	APIVersion string            `yaml:"apiVersion"`
	Kind       string            `yaml:"kind"`
	Metadata   manifestMetadata  `yaml:"metadata"`
	Data       map[string]string `yaml:"data,omitempty"`
}

type manifestMetadata struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace,omitempty"`
}

func newManifest(s *corev1.Secret) manifest {
	data := make(map[string]string, len(s.Data))
	for key, value := range s.Data {
		data[key] = base64.StdEncoding.EncodeToString(value)
	}
	return manifest{
		APIVersion: s.APIVersion,
		Kind:       s.Kind,
		Metadata: manifestMetadata{
			Name:      s.Name,
			Namespace: s.Namespace,
		},
		Data: data,
	}
}

// WriteManifests writes secrets as a multi-document YAML stream, each
// document introduced by a "---" line. Data keys are sorted.
func WriteManifests(w io.Writer, secrets []corev1.Secret) error {
	var buf bytes.Buffer
	for i := range secrets {
		data, err := yaml.Marshal(newManifest(&secrets[i]))
		if err != nil {
			return fmt.Errorf("marshalling secret %s: %w", secrets[i].Name, err)
		}
		buf.WriteString(manifestSeparator)
		buf.Write(data)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
