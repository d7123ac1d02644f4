package model

// CartKey identifies a cart line. Two adds with the same key merge.
type CartKey struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
}

type CartEntry struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (e CartEntry) Key() CartKey {
	return CartKey{ProductID: e.ProductID, Size: e.Size}
}
