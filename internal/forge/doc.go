// Package forge discovers repositories on git hosting services so they can
// be imported as workspace projects.
//
// [GitHub] lists the repositories of an organization through the REST API
// (google/go-github). [GitLab] lists the projects owned by the authenticated
// user (gitlab-org/api/client-go). Both implement [Lister].
//
// # Importing
//
// [Import] adds discovered repositories to a workspace. Repositories whose
// name is already taken by a project are skipped and reported, never
// overwritten.
package forge
