// Package render turns decrypted secrets documents into the formats other
// tools consume.
//
// Env writes the top-level "environment" section as POSIX shell export
// lines, ready to be sourced or evaluated:
//
//	eval "$(ejgo env secrets.ejson)"
//
// KubeSecrets builds one v1 Secret per child of the top-level "kubernetes"
// section. A "_namespace" member of a child sets the Secret's namespace and
// is not included in its data.
package render
