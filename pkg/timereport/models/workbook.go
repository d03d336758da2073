package models

// Workbook is the whole archive: sheets keyed by name in file order.
type Workbook struct {
	// BookName is the archive file name (no path).
	BookName string
	sheets   map[string]*Sheet
	order    []string
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(bookName string) *Workbook {
	return &Workbook{BookName: bookName, sheets: make(map[string]*Sheet)}
}

// Sheet returns the named sheet, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	return w.sheets[name]
}

// Put adds or replaces a sheet. New sheets go after the existing ones.
func (w *Workbook) Put(s *Sheet) {
	if w.sheets == nil {
		w.sheets = make(map[string]*Sheet)
	}
	if _, ok := w.sheets[s.Name]; !ok {
		w.order = append(w.order, s.Name)
	}
	w.sheets[s.Name] = s
}

// Names returns the sheet names in file order.
func (w *Workbook) Names() []string {
	return append([]string(nil), w.order...)
}

// Sheets returns the sheets in file order.
func (w *Workbook) Sheets() []*Sheet {
	out := make([]*Sheet, 0, len(w.order))
	for _, name := range w.order {
		out = append(out, w.sheets[name])
	}
	return out
}

// Rows returns the total row count over all sheets.
func (w *Workbook) Rows() int {
	n := 0
	for _, s := range w.sheets {
		n += s.Len()
	}
	return n
}

// Clone returns a shallow copy; sheets are shared until replaced with Put.
func (w *Workbook) Clone() *Workbook {
	c := NewWorkbook(w.BookName)
	for _, name := range w.order {
		c.Put(w.sheets[name])
	}
	return c
}
