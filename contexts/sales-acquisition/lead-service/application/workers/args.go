package workers

// Task argument maps arrive from the dispatch collaborator as loosely
// typed JSON-ish values; these helpers read them defensively.

func argString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

func argInt(args map[string]any, key string) int {
	if args == nil {
		return 0
	}
	switch value := args[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

func argMap(args map[string]any, key string) map[string]any {
	if args == nil {
		return nil
	}
	if value, ok := args[key].(map[string]any); ok {
		return value
	}
	return nil
}
