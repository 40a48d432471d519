// Package test provides infrastructure for integration testing the HAL server.
//
// A Suite runs the complete server behind an httptest.Server:
//
//   - a file backed SQLite database, migrated like production
//   - the Fiber app with hypermedia support enabled
//   - a Traverson client rooted at the API entry point
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    suite := test.NewSuite(t)
//	    defer suite.Cleanup()
//
//	    doc, err := suite.Traverson.Follow("projects").ToDocument(suite.Context())
//	}
package test
