// Package configs manages the ejgo user configuration.
//
// Configuration is a single TOML file, by default at
// <user config dir>/ejgo/config.toml (override with $EJGO_CONFIG):
//
//	keydir = "/opt/ejson/keys"
//	audit_log = "/var/log/ejgo/audit.jsonl"
//
// Both keys are optional. Unknown keys are rejected.
//
// # Key Directory
//
// ResolveSettings picks the key directory from, in order: the --keydir flag,
// $EJSON_KEYDIR, the config file, and finally DefaultKeyDir. The source of
// the chosen value is recorded so `ejgo config show` can explain it.
package configs
