package response

type CollectionResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewCollectionResponse[T any](items []T) CollectionResponse[T] {
	return CollectionResponse[T]{
		Items: items,
		Total: len(items),
	}
}
