package stash

var hashOps = map[string]HashOp{
	"item":    hashItem,
	"hash":    hashHash,
	"size":    hashSize,
	"each":    hashEach,
	"items":   hashEach,
	"keys":    hashKeys,
	"values":  hashValues,
	"pairs":   hashPairs,
	"list":    hashList,
	"exists":  hashExists,
	"defined": hashDefined,
	"delete":  hashDelete,
	"import":  hashImport,
	"sort":    hashSort,
	"nsort":   hashNsort,
}

func hashItem(m *Mapping, args ...Value) (Value, error) {
	key := arg(args, 0)
	if isPrivate(key) {
		return Undefined, nil
	}
	v, ok := m.Get(Text(key))
	if !ok {
		return Undefined, nil
	}
	return v, nil
}

func hashHash(m *Mapping, args ...Value) (Value, error) {
	return m, nil
}

func hashSize(m *Mapping, args ...Value) (Value, error) {
	return Int(int64(len(publicKeys(m)))), nil
}

// hashEach flattens the mapping into key, value, key, value... in key
// order.
func hashEach(m *Mapping, args ...Value) (Value, error) {
	keys := publicKeys(m)
	each := &List{Items: make([]Value, 0, 2*len(keys))}
	for _, key := range keys {
		v, _ := m.Get(key)
		each.Items = append(each.Items, String(key), v)
	}
	return each, nil
}

func hashKeys(m *Mapping, args ...Value) (Value, error) {
	return textList(publicKeys(m)), nil
}

func hashValues(m *Mapping, args ...Value) (Value, error) {
	keys := publicKeys(m)
	values := &List{Items: make([]Value, 0, len(keys))}
	for _, key := range keys {
		v, _ := m.Get(key)
		values.Items = append(values.Items, v)
	}
	return values, nil
}

// hashPairs returns {key, value} mappings ordered by case-folded key.
func hashPairs(m *Mapping, args ...Value) (Value, error) {
	keys := sortedKeysBy(m, foldText)
	pairs := &List{Items: make([]Value, 0, len(keys))}
	for _, key := range keys {
		v, _ := m.Get(key)
		pairs.Items = append(pairs.Items, MappingOf(map[string]Value{
			"key":   String(key),
			"value": v,
		}))
	}
	return pairs, nil
}

func hashList(m *Mapping, args ...Value) (Value, error) {
	switch textArg(args, 0, "") {
	case "keys":
		return hashKeys(m)
	case "values":
		return hashValues(m)
	case "each":
		return hashEach(m)
	default:
		return hashPairs(m)
	}
}

func hashExists(m *Mapping, args ...Value) (Value, error) {
	key := arg(args, 0)
	return Bool(!isPrivate(key) && m.Has(Text(key))), nil
}

func hashDefined(m *Mapping, args ...Value) (Value, error) {
	key := arg(args, 0)
	if IsUndefined(key) {
		return Bool(true), nil
	}
	if isPrivate(key) {
		return Bool(false), nil
	}
	v, _ := m.Get(Text(key))
	return Bool(!IsUndefined(v)), nil
}

// hashDelete removes the named keys. Absent and private keys are ignored.
func hashDelete(m *Mapping, args ...Value) (Value, error) {
	for _, key := range args {
		if isPrivate(key) {
			continue
		}
		m.Delete(Text(key))
	}
	return Empty, nil
}

// hashImport merges another mapping into m. Anything else is ignored.
func hashImport(m *Mapping, args ...Value) (Value, error) {
	if other, ok := arg(args, 0).(*Mapping); ok {
		m.Merge(other)
	}
	return Empty, nil
}

func hashSort(m *Mapping, args ...Value) (Value, error) {
	return textList(sortedKeysBy(m, foldText)), nil
}

func hashNsort(m *Mapping, args ...Value) (Value, error) {
	return textList(sortedKeysBy(m, toLong)), nil
}

// publicKeys returns the mapping's keys in order, without private names.
func publicKeys(m *Mapping) []string {
	keys := m.Keys()
	public := keys[:0]
	for _, key := range keys {
		if !isPrivate(String(key)) {
			public = append(public, key)
		}
	}
	return public
}

func textList(items []string) *List {
	l := &List{Items: make([]Value, 0, len(items))}
	for _, item := range items {
		l.Items = append(l.Items, String(item))
	}
	return l
}
