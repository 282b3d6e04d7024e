package search

import (
	"fmt"
	"strings"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// graph maps page tokens to the tokens they link to, in page order.
type graph map[string][]string

// render builds an HTML page containing one anchor per link.
func render(token string, links []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s - Wikipedia</title></head><body>\n", strings.ReplaceAll(token, "_", " "))
	for _, link := range links {
		fmt.Fprintf(&b, "<p><a href=\"/wiki/%s\" title=\"%s\">%s</a></p>\n", link, link, link)
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

// source builds an in-memory corpus from g. Pages missing from g are served
// as the link-free placeholder.
func (g graph) source() *corpus.MemorySource {
	pages := make(map[model.PageID]string, len(g))
	for token, links := range g {
		pages[model.PageID(model.WikiPrefix+token)] = render(token, links)
	}
	return corpus.NewMemorySource(pages)
}

// ids converts tokens into page identifiers.
func ids(tokens ...string) []model.PageID {
	out := make([]model.PageID, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, model.PageID(model.WikiPrefix+t))
	}
	return out
}

// wantPath converts tokens into a model.Path.
func wantPath(tokens ...string) model.Path {
	return model.Path(ids(tokens...))
}

// calvinLiGraph is shaped so that uniform-cost search must drain a band of
// cheap pages (sharing "Li" or "/wiki/Calvin" with the source) before it
// reaches Chinese_language, while Main_Page links straight to Wikipedia.
var calvinLiGraph = graph{
	"Calvin_Li": {
		"Main_Page", "Calvin_Li", "Weibo", "Jet_Li", "Gong_Li", "Calvin_Klein",
		"Chinese_language", "Tencent", "Wuxia", "File:Calvin_Li.jpg", "Calvin_Harris",
		"Ang_Lee", "Chen_Kaige", "Cao_Cao", "Lucy_Li", "Nancy_Li", "Ai_Weiwei",
	},
	"Main_Page":        {"Main_Page", "Wikipedia"},
	"Calvin_Harris":    {"Main_Page", "Calvin_Harris", "Calvin_Broadus", "Electronic_music"},
	"Calvin_Klein":     {"Main_Page", "Calvin_Klein", "Calvin_Coolidge", "Fashion"},
	"Gong_Li":          {"Gong_Li", "Beijing", "Bai_Ling"},
	"Jet_Li":           {"Jet_Li", "Bruce_Li", "Hero_(2002_film)"},
	"Lucy_Li":          {"Lucy_Li", "Golf"},
	"Nancy_Li":         {},
	"Ai_Weiwei":        {"Ai_Weiwei", "Beijing"},
	"Ang_Lee":          {"Ang_Lee", "Taiwan"},
	"Bruce_Li":         {"Bruce_Li", "Bruce_Lee"},
	"Calvin_Broadus":   {"Snoop_Dogg"},
	"Calvin_Coolidge":  {"President_of_the_United_States"},
	"Cao_Cao":          {"Cao_Cao", "Three_Kingdoms"},
	"Chen_Kaige":       {"Chen_Kaige", "Farewell_My_Concubine_(film)"},
	"Chinese_language": {"Main_Page", "Chinese_language", "Pinyin", "Wikipedia", "Mandarin_Chinese"},
	"Wikipedia":        {"Main_Page", "Wikipedia"},
}

// potatoChipGraph has its goal two levels deep behind the last link of the source.
var potatoChipGraph = graph{
	"Potato_chip": {
		"Main_Page", "French_fries", "United_Kingdom", "Potato", "Snack", "Saratoga_Springs,_New_York",
	},
	"Main_Page":                  {"Main_Page"},
	"French_fries":               {"Potato", "Belgium"},
	"United_Kingdom":             {"London"},
	"Potato":                     {"Potato"},
	"Snack":                      {"Snack_food"},
	"Saratoga_Springs,_New_York": {"New_York_(state)", "Staten_Island"},
}

// bingGraph rewards always following the last link on a page.
var bingGraph = graph{
	"Calvin_Li":     {"Main_Page", "Calvin_Li", "Weibo", "Tencent_Weibo"},
	"Tencent_Weibo": {"Main_Page", "Tencent_Weibo", "Weibo", "XMPP"},
	"XMPP":          {"Main_Page", "Jabber", "Yammer"},
	"Yammer":        {"Main_Page", "Microsoft_Bing", "Microsoft"},
}

// computerScienceGraph puts the only route to the goal behind the last link of
// the source, after eight pages that breadth-first search has to fetch first.
var computerScienceGraph = graph{
	"Computer_science": {
		"Main_Page", "Computer_science", "Algorithm", "Programming_language",
		"Theory_of_computation", "Data_structure", "Computer_graphics",
		"Artificial_intelligence", "Mathematics", "Object_Management_Group",
	},
	"Main_Page":               {"Main_Page"},
	"Algorithm":               {"Main_Page", "Algorithm", "Pseudocode", "Computer_science"},
	"Mathematics":             {"Main_Page", "Mathematics", "Algorithm", "Number_theory"},
	"Pseudocode":              {"Pseudocode", "Algorithm"},
	"Object_Management_Group": {"Main_Page", "Object_Management_Group", "Unified_Modeling_Language", "Richard_Soley"},
}
