// Package corpus provides the page sources that searches fetch from.
//
// A Source maps a page identifier to raw page content. Fetches are the
// expensive operation every search tries to minimize, so the Recorder
// wrapper keeps an ordered log of every fetch for auditing.
//
// # Sources
//
//   - MemorySource: pages held in a map, used by tests and small fixtures
//   - DirSource: one "<token>.html" file per page in a directory snapshot
//   - DBSource: pages imported into the SQLite store
//   - HTTPSource: pages served over HTTP, rate limited
//   - CachedSource: LRU cache with request coalescing in front of any Source
//
// Unknown pages are never an error: every source returns Placeholder, a page
// without links, so searches simply fail to extend their frontier from it.
//
// # Usage
//
//	src := corpus.NewDirSource("./testdata/wiki")
//	rec := corpus.NewRecorder(src)
//	content, err := rec.Fetch(ctx, "/wiki/Calvin_Li")
//	fmt.Println(rec.Requests()) // [/wiki/Calvin_Li]
package corpus
