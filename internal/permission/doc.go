// Package permission decides what a role may see and do.
//
// Two tiers are combined. The static tier is compiled in: Rules grants
// actions on resources and Routes lists the roles allowed on each page.
// The dynamic tier is a per-role table of module overrides maintained by
// administrators, read through a Store and cached per role name. Built-in
// roles are answered by the static tier without any I/O; custom roles
// created at runtime get access only through dynamic rows.
package permission
