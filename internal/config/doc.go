// Package config loads and watches the readingtime configuration file.
//
// Top-level types:
//   - Config{Installation, Instance, Host} parsed from YAML
//   - Installation is a types.Config: words_per_minute, seconds_per_asset,
//     seconds_per_entry, allow_override
//   - InstanceConfig: body_field_id, the source field to estimate
//   - HostConfig: store_path, listen_addr, debounce, log_level, log_format,
//     auth (mode apikey|none, header, key_env resolved by Key())
//
// Load(path) reads the YAML file, applies defaults (225 wpm, 10s per asset
// and entry, overrides allowed, field "body", 500ms debounce), then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to reload the file when it is
// written. Controllers already running keep the Config they were built with;
// only new sessions see the reloaded values.
package config
