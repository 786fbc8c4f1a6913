//go:build e2e

// Package e2e holds the browser-driven navigation checks for the website.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present).
//
// Running the navigation checks against a site that is already running:
//
//	go test -tags=e2e ./e2e/... -run TestNavigation
//	go test -tags=e2e ./e2e/... -run TestNavigation -base-url http://localhost:4000
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol), via pkg/browser
//   - testdata/navigation.yaml for the expected links and content
//   - cmd/fixture-site/server for the self-contained TestFixtureSite_* tests
//
// Test isolation:
// Each test launches its own browser and loads the root page fresh, so
// cases do not depend on each other's state.
package e2e
