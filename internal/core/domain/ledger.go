package domain

type LedgerKind string

const (
	LedgerInventory LedgerKind = "inventory"
	LedgerCart      LedgerKind = "cart"
)

// Caption is the title the ledger is listed under.
func (k LedgerKind) Caption() string {
	switch k {
	case LedgerInventory:
		return "Data_base"
	case LedgerCart:
		return "Shopping_cart"
	}
	return string(k)
}

// KeepsEmpty reports whether an entry stays in the ledger once its quantity
// drops to zero. Cart entries are removed at zero.
func (k LedgerKind) KeepsEmpty() bool {
	return k == LedgerInventory
}

type Entry struct {
	Article  string
	Quantity int
}
