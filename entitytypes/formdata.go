// Capability types that the bundled converters dispatch on.
package entitytypes

/*
FormData is an ordered, multi-valued key -> [values] mapping that is sent as an
application/x-www-form-urlencoded entity.

Keys keep the order in which they were first added, and values keep the order in which
they were added to their key, so the encoded payload is deterministic. The zero value is
an empty FormData ready to use.
*/
type FormData struct {
	keys   []string
	fields map[string][]string
}

// NewFormData returns an empty FormData.
func NewFormData() *FormData {
	return &FormData{}
}

// Add appends value to the values of key.
func (formData *FormData) Add(key string, values ...string) *FormData {
	if formData.fields == nil {
		formData.fields = make(map[string][]string)
	}
	if _, ok := formData.fields[key]; !ok {
		formData.keys = append(formData.keys, key)
		formData.fields[key] = make([]string, 0, len(values))
	}
	formData.fields[key] = append(formData.fields[key], values...)
	return formData
}

// Set replaces the values of key.
func (formData *FormData) Set(key string, values ...string) *FormData {
	formData.Del(key)
	return formData.Add(key, values...)
}

// Del removes key and all of its values.
func (formData *FormData) Del(key string) {
	if _, ok := formData.fields[key]; !ok {
		return
	}
	delete(formData.fields, key)
	for index, existing := range formData.keys {
		if existing == key {
			formData.keys = append(formData.keys[:index:index], formData.keys[index+1:]...)
			break
		}
	}
}

// Get returns the first value of key, or "" when the key is absent.
func (formData *FormData) Get(key string) string {
	values := formData.fields[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Values returns a copy of the values of key.
func (formData *FormData) Values(key string) []string {
	values, ok := formData.fields[key]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Has reports whether key is present.
func (formData *FormData) Has(key string) bool {
	_, ok := formData.fields[key]
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (formData *FormData) Keys() []string {
	return append([]string(nil), formData.keys...)
}

// Len returns the number of keys.
func (formData *FormData) Len() int {
	return len(formData.keys)
}

// Fields returns a copy of the mapping. Key order is lost; use Keys to iterate in
// order.
func (formData *FormData) Fields() map[string][]string {
	fields := make(map[string][]string, len(formData.fields))
	for key, values := range formData.fields {
		fields[key] = append([]string(nil), values...)
	}
	return fields
}

// Each calls visit for every key, value pair in order, repeating the key for each of
// its values.
func (formData *FormData) Each(visit func(key string, value string)) {
	for _, key := range formData.keys {
		for _, value := range formData.fields[key] {
			visit(key, value)
		}
	}
}
