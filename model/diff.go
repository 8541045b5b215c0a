package model

// FindDiffStart returns the index of the first block where the two documents
// differ, or nil when they are identical.
func FindDiffStart(a, b *Document) *int {
	for i := 0; ; i++ {
		if i == a.Len() || i == b.Len() {
			if a.Len() == b.Len() {
				return nil
			}
			return &i
		}
		if !a.blocks[i].Eq(b.blocks[i]) {
			return &i
		}
	}
}

// DiffEnd is the result of FindDiffEnd with the positions in both a and b
// documents.
type DiffEnd struct {
	A int
	B int
}

// FindDiffEnd returns the end (exclusive) of the range where the two
// documents differ, as an index in each of them, or nil when they are
// identical.
func FindDiffEnd(a, b *Document) *DiffEnd {
	ia := a.Len()
	ib := b.Len()
	for {
		if ia == 0 || ib == 0 {
			if ia == ib {
				return nil
			}
			return &DiffEnd{A: ia, B: ib}
		}
		if !a.blocks[ia-1].Eq(b.blocks[ib-1]) {
			return &DiffEnd{A: ia, B: ib}
		}
		ia--
		ib--
	}
}
