// Package snapshot captures the rendered dashboard page as a PDF using a
// headless Chrome driven through chromedp. The page is printed after the
// ready selector is visible and the chart animations have settled.
package snapshot
