package transcript

// PageSize is the default number of conversations per page.
const PageSize = 5

// Page is one fixed-size slice of the conversation sequence.
// Numbers are 1-indexed and stable across runs for unchanged input
// ordering and page size; index entries link to specific pages, so
// this stability is load-bearing for archive merging.
type Page struct {
	Number        int
	Conversations []*Conversation
}

// Paginate partitions conversations into fixed-size pages. Zero
// conversations produce zero pages.
func Paginate(conversations []*Conversation, pageSize int) []Page {
	if pageSize <= 0 {
		pageSize = PageSize
	}

	var pages []Page
	for start := 0; start < len(conversations); start += pageSize {
		end := start + pageSize
		if end > len(conversations) {
			end = len(conversations)
		}
		pages = append(pages, Page{
			Number:        len(pages) + 1,
			Conversations: conversations[start:end],
		})
	}
	return pages
}

// PageCount returns ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return (total + pageSize - 1) / pageSize
}

// PageFor returns the 1-indexed page holding the conversation at the
// given index.
func PageFor(index, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return index/pageSize + 1
}
