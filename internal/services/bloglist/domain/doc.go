// Package domain implements the bloglist core: blog and user records,
// token-based identity resolution, mutation rules, and ownership
// enforcement. Persistence is injected through the store interfaces
// declared here.
package domain
