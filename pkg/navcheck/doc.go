// Package navcheck implements the website navigation checks.
//
// A check loads the site's root page, clicks the first link whose href
// contains a fragment (about, blog, tags, projects), waits for the URL to
// reach the expected path and then asserts that headings and body text
// rendered on the destination page contain literal strings.
//
// Cases are plain data. DefaultSuite returns the checks for the personal
// website; LoadSuite reads the same shape from a YAML fixture file so the
// content strings can be maintained next to the site instead of in code:
//
//	base_url: http://localhost:3000
//	cases:
//	  - name: about
//	    link: about
//	    path: /about
//	    expect:
//	      - tag: h1
//	        text: About
//
// The package does not drive a browser itself. Runner talks to a Browser,
// which pkg/browser implements on top of Rod.
//
// Usage:
//
//	client, err := browser.New(browser.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	runner, err := navcheck.NewRunner(client)
//	if err != nil {
//		return err
//	}
//	report := runner.Run(ctx, navcheck.DefaultSuite())
//	if !report.OK() {
//		return fmt.Errorf("%d case(s) failed", report.Failed())
//	}
package navcheck
