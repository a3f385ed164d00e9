package disguise

import (
	"fmt"
	"strings"
)

// Identifier pools for the synthetic listing. Drawn from via the
// seeded sequence, so a given page always names the same things.
var (
	funcNames = []string{
		"process_data", "handle_request", "validate_input", "transform_output",
		"configure_service", "initialize_db", "fetch_metadata", "parse_response",
		"build_query", "execute_task", "resolve_config", "sanitize_payload",
		"aggregate_results", "dispatch_event", "compute_hash", "serialize_state",
	}

	moduleNames = []string{
		"config", "utils", "services.auth", "middleware.cache",
		"sqlalchemy", "fastapi", "redis", "celery", "pydantic",
		"core.logger", "handlers.user", "models.session", "hashlib",
		"pathlib", "typing", "validators.schema", "httpx", "asyncio",
	}

	varNames = []string{
		"config", "result", "payload", "response", "metadata",
		"session", "connection", "buffer", "context", "options",
		"settings", "params", "query", "schema", "token",
	}

	classNames = []string{
		"DataProcessor", "RequestHandler", "ServiceManager", "CacheLayer",
		"AuthProvider", "QueryBuilder", "EventDispatcher", "TaskRunner",
	}

	paramNames = []string{"options", "config", "ctx", "request", "data", "params"}

	configKeys = []string{
		"database", "host", "port", "timeout", "max_retries", "debug",
		"cache_ttl", "api_key",
	}
)

// linesPerListing spaces the synthetic line-number gutter between
// consecutive pages.
const linesPerListing = 60

// Listing is a synthesized source-code rendering of one page.
type Listing struct {
	Code      string
	StartLine int // First gutter number, advances with the page index
}

// AsCode renders text as a synthetic listing and returns the plain
// code string. Every non-blank input line appears exactly once, in
// order, embedded as a comment or a quoted literal.
func AsCode(text string, pageIndex int) string {
	return Code(text, pageIndex).Code
}

// Code renders text as a synthetic listing.
func Code(text string, pageIndex int) Listing {
	rng := newLCG(pageIndex*codeSeedStep + codeSeedBase)

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	var out []string

	// 2-3 import-like header lines carrying the first source lines as
	// trailing comments.
	importCount := min(2+int(rng.Next()*2), len(lines))
	for i := 0; i < importCount; i++ {
		mod := pick(moduleNames, rng)
		v := pick(varNames, rng)
		safe := escape(lines[i])
		if rng.Next() > 0.5 {
			out = append(out, fmt.Sprintf("from %s import %s  # %s", mod, v, safe))
		} else {
			out = append(out, fmt.Sprintf("import %s  # %s", mod, safe))
		}
	}
	out = append(out, "")

	i := importCount
	templateCount := 6
	tidx := int(rng.Next() * float64(templateCount))

	for i < len(lines) {
		remaining := len(lines) - i
		switch tidx % templateCount {
		case 0: // documented-function block
			count := min(2+int(rng.Next()*3), remaining)
			chunk := lines[i : i+count]
			out = append(out, "")
			fn := pick(funcNames, rng)
			for j, line := range chunk {
				safe := escape(line)
				switch {
				case j == 0:
					out = append(out, fmt.Sprintf("def %s(%s, %s):", fn, pick(paramNames, rng), pick(paramNames, rng)))
					out = append(out, fmt.Sprintf(`    """%s`, safe))
				case j == len(chunk)-1:
					out = append(out, fmt.Sprintf(`    %s"""`, safe))
				default:
					out = append(out, "    "+safe)
				}
			}
			i += count

		case 1: // async-function block
			count := min(2+int(rng.Next()*4), remaining)
			chunk := lines[i : i+count]
			fn := pick(funcNames, rng)
			out = append(out, "")
			out = append(out, fmt.Sprintf("async def %s(%s):", fn, pick(paramNames, rng)))
			for _, line := range chunk {
				safe := escape(line)
				if rng.Next() > 0.5 {
					out = append(out, fmt.Sprintf(`    %s = "%s"`, pick(varNames, rng), safe))
				} else {
					out = append(out, "    # "+safe)
				}
			}
			out = append(out, "    return "+pick(varNames, rng))
			i += count

		case 2: // configuration-map block
			count := min(3+int(rng.Next()*3), remaining)
			chunk := lines[i : i+count]
			v := pick(varNames, rng)
			out = append(out, "")
			out = append(out, v+" = {")
			for j, line := range chunk {
				safe := escape(line)
				key := configKeys[j%len(configKeys)]
				out = append(out, fmt.Sprintf(`    "%s": "%s",`, key, safe))
			}
			out = append(out, "}")
			i += count

		case 3: // try/except block
			count := min(2+int(rng.Next()*3), remaining)
			if count < 2 {
				count = 2
			}
			chunk := lines[i:min(i+count, len(lines))]
			fn := pick(funcNames, rng)
			out = append(out, "")
			out = append(out, "try:")
			for _, line := range chunk[:len(chunk)-1] {
				out = append(out, fmt.Sprintf(`    await %s("%s")`, fn, escape(line)))
			}
			safeLast := escape(chunk[len(chunk)-1])
			out = append(out, "except Exception as exc:")
			out = append(out, fmt.Sprintf(`    logger.warning(f"%s: {exc}")`, safeLast))
			i += len(chunk)

		case 4: // class-method block
			count := min(2+int(rng.Next()*3), remaining)
			chunk := lines[i : i+count]
			cls := pick(classNames, rng)
			method := pick(funcNames, rng)
			out = append(out, "")
			out = append(out, "class "+cls+":")
			out = append(out, fmt.Sprintf("    def %s(self, %s):", method, pick(paramNames, rng)))
			for _, line := range chunk {
				out = append(out, "        # "+escape(line))
			}
			out = append(out, "        return self."+pick(varNames, rng))
			i += count

		default: // single assignment
			out = append(out, fmt.Sprintf(`%s = "%s"`, pick(varNames, rng), escape(lines[i])))
			i++
		}
		tidx++
	}

	return Listing{
		Code:      strings.Join(out, "\n"),
		StartLine: pageIndex*linesPerListing + 1,
	}
}

// escape makes a source line safe to embed in quoted literals.
func escape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `"`, `\"`)
	return strings.ReplaceAll(text, `'`, `\'`)
}
