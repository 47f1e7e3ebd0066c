package output

// Keys removed everywhere in the response tree.
var droppedKeys = map[string]struct{}{
	"links": {},
}

// Keys removed from each entry of a top-level items list. These duplicate
// other fields or add noise an agent cannot act on.
var droppedItemKeys = map[string]struct{}{
	"meeting_title":                  {},
	"calendar_invitees_domains_type": {},
}

// Sanitize prepares a decoded JSON value for serialization: it strips
// low-value item fields and then removes nulls and empty strings, maps,
// and lists recursively. The input is not modified.
func Sanitize(v any) any {
	return removeNullAndEmpty(stripItemKeys(v))
}

// stripItemKeys removes noisy keys from each element of a top-level
// "items" list, including email_domain inside invitee and recorder
// records. Anything that is not the expected shape passes through.
func stripItemKeys(v any) any {
	root, ok := v.(map[string]any)
	if !ok {
		return v
	}

	items, ok := root["items"].([]any)
	if !ok {
		return v
	}

	out := make(map[string]any, len(root))
	for k, val := range root {
		out[k] = val
	}

	cleanedItems := make([]any, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			cleanedItems = append(cleanedItems, raw)
			continue
		}
		cleaned := make(map[string]any, len(item))
		for k, val := range item {
			if _, drop := droppedItemKeys[k]; drop {
				continue
			}
			cleaned[k] = val
		}
		if invitees, ok := cleaned["calendar_invitees"].([]any); ok {
			cleaned["calendar_invitees"] = stripInviteeDomains(invitees)
		}
		if recorder, ok := cleaned["recorded_by"].(map[string]any); ok {
			cleaned["recorded_by"] = withoutKey(recorder, "email_domain")
		}
		cleanedItems = append(cleanedItems, cleaned)
	}
	out["items"] = cleanedItems
	return out
}

func stripInviteeDomains(invitees []any) []any {
	out := make([]any, 0, len(invitees))
	for _, raw := range invitees {
		if invitee, ok := raw.(map[string]any); ok {
			out = append(out, withoutKey(invitee, "email_domain"))
		} else {
			out = append(out, raw)
		}
	}
	return out
}

func withoutKey(m map[string]any, key string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// removeNullAndEmpty drops nil values, empty strings, and empty maps and
// lists at every level, along with globally dropped keys. Zero numbers
// and false booleans are kept.
func removeNullAndEmpty(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if _, drop := droppedKeys[k]; drop {
				continue
			}
			cleaned := removeNullAndEmpty(item)
			if isEmpty(cleaned) {
				continue
			}
			out[k] = cleaned
		}
		return out

	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			cleaned := removeNullAndEmpty(item)
			if isEmpty(cleaned) {
				continue
			}
			out = append(out, cleaned)
		}
		return out

	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
