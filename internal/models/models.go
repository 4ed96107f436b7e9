package models

// All lists the models owned by the store, in migration order.
func All() []any {
	return []any{&Product{}, &Client{}, &Template{}}
}
