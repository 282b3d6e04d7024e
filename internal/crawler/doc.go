// Package crawler copies part of a wiki into a local corpus.
//
// A Spider walks the link graph breadth-first from a seed page through any
// corpus.Source, usually an HTTP page server, and hands every page it fetches
// to a callback. The CLI's snapshot command stores those pages in the
// database or in a directory, so that later races run offline.
//
// Crawls are bounded by a maximum depth and a maximum number of pages, and
// can be narrowed with glob patterns on page names:
//
//	spider := crawler.NewSpider(src,
//		crawler.WithMaxDepth(2),
//		crawler.WithIgnorePatterns([]string{"List_of_*"}),
//	)
//	stats, err := spider.Crawl(ctx, "/wiki/Calvin_Li", store)
//
// Politeness is the source's concern: HTTPSource applies its rate limit to
// every fetch the spider makes.
package crawler
