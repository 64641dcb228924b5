// Package config handles loading and validation of fw settings.
//
// The config directory is $FW_CONFIG_DIR, or ~/.config/fw when unset. It holds
// settings.toml plus the workspace model (projects/ and tags/, see package
// workspace).
//
// # Configuration Sources (highest priority first)
//
//   - FW_* environment variables (FW_WORKSPACE, FW_GITHUB_TOKEN, FW_GITLAB_TOKEN, FW_GITLAB_URL, ...)
//   - settings.toml
//   - Default values
//
// # Key Settings
//
//   - workspace: root directory for project checkouts (absolute or ~/...)
//   - shell: command prefix used for hooks and foreach (default ["sh", "-c"])
//   - default_after_clone, default_after_workon: hooks run before tag and project hooks
//   - strict_tag_filter: reject --tag values no project or tag knows about (default true)
//   - github_token: token for org-import
//   - [gitlab] token, url: credentials for gitlab-import
//
// Example:
//
//	workspace = "~/src"
//	shell = ["bash", "-c"]
//	default_after_workon = "git status --short"
//
//	[gitlab]
//	url = "https://gitlab.example.com/api/v4"
package config
