// Package wardview is a self-contained healthcare analytics dashboard.
//
// It loads a tabular patient dataset (CSV), computes a fixed set of
// aggregate views (distributions, trends, correlations, breakdowns), and
// serves them as an HTML dashboard with server-rendered PNG charts and a
// JSON API.
//
//	table, err := dataset.Load("healthcare_dataset.csv")
//	allViews := views.BuildAll(table, views.DefaultConfig())
//	server.New(table, allViews).Start(":8080")
//
// Every view is a pure read of the shared immutable table; nothing is
// persisted and no external service is called.
package wardview
