// Package dradis provides a scope-based client for the Dradis Pro API v1.
//
// Usage:
//
//	client, err := dradis.New(baseURL, token, dradis.WithTimeout(30*time.Second))
//	projects, err := client.Projects().List(ctx)
//	issues, err := client.Project(12).Issues().ListAll(ctx)
//	evidence, err := client.Project(12).Evidence(4).Create(ctx, dradis.EvidenceRequest{
//		Content: "#[Output]#\nnc -v 10.0.0.1 443",
//		IssueID: 77,
//	})
//
// Every request carries the API token and the versioned Accept header;
// project-scoped requests additionally carry the Dradis-Project-Id header.
// Failures from the remote service surface as *APIError values that can be
// inspected with the predicate helpers (IsNotFound, IsUnauthorized, ...).
package dradis
