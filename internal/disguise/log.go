package disguise

import (
	"fmt"
	"strings"
	"time"
)

var serviceNames = []string{
	"api-gateway", "auth-service", "user-service", "db-manager",
	"cache-layer", "worker-01", "worker-02", "scheduler",
	"notification-svc", "payment-processor", "search-indexer",
	"file-storage", "rate-limiter", "health-check",
}

// severity levels with selection weights, heaviest first.
var logLevels = []struct {
	name   string
	weight int
}{
	{"INFO", 45},
	{"DEBUG", 30},
	{"WARN", 15},
	{"ERROR", 8},
	{"TRACE", 2},
}

var logContexts = []string{
	"method=GET path=/api/v2/users status=200 time=45ms",
	"method=POST path=/api/v2/data status=201 time=123ms",
	"method=GET path=/api/v2/config status=200 time=12ms",
	"query=SELECT rows=128 duration=23ms pool=primary",
	"query=INSERT rows=1 duration=5ms pool=primary",
	"cache=HIT key=user:9382 ttl=300s",
	"cache=MISS key=session:4821 ttl=0s",
	"queue=jobs pending=3 processed=1847 failed=0",
	"conn=ws-4829 event=message size=1.2kb",
	"retry=2/3 backoff=500ms target=upstream-01",
	"request_id=a8f2c3d1 trace_id=7b4e9f02 span=12",
	"token=refresh scope=read:users ttl=1800s",
	"bytes_in=2048 bytes_out=8192 compression=gzip",
	"workers=4/8 heap=234mb rss=512mb uptime=3h22m",
	"task=cleanup removed=47 duration=890ms next=3600s",
}

// Synthetic clock advances, in milliseconds: pages are spaced apart,
// blank lines read as idle gaps, content lines as steady traffic.
const (
	pageClockStepMs = 30000
	blankGapBaseMs  = 2000
	blankGapSpanMs  = 5000
	lineGapBaseMs   = 50
	lineGapSpanMs   = 150
)

// AsLog renders text as a synthetic server-log stream. The timestamp
// base is 09:00 local time today; everything else is a pure function
// of (text, pageIndex).
func AsLog(text string, pageIndex int) string {
	now := time.Now()
	base := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.Local)
	return AsLogAt(text, pageIndex, base)
}

// AsLogAt renders text as a synthetic server-log stream anchored at
// an explicit base time. Every non-blank input line appears exactly
// once, trimmed, in order; blank lines stay blank.
func AsLogAt(text string, pageIndex int, base time.Time) string {
	rng := newLCG(pageIndex*logSeedStep + logSeedBase)
	clockMs := base.UnixMilli() + int64(pageIndex)*pageClockStepMs

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			clockMs += int64(rng.Next()*blankGapSpanMs) + blankGapBaseMs
			out = append(out, "")
			continue
		}

		clockMs += int64(rng.Next()*lineGapSpanMs) + lineGapBaseMs
		ts := time.UnixMilli(clockMs).In(base.Location()).Format("2006-01-02T15:04:05") +
			fmt.Sprintf(".%03dZ", clockMs%1000)

		service := pick(serviceNames, rng)
		pid := servicePID(service)
		level := pickLevel(rng)
		ctx := pick(logContexts, rng)

		out = append(out, fmt.Sprintf("[%s] %-20s pid=%d %-5s %s | %s",
			ts, service, pid, level, strings.TrimSpace(line), ctx))
	}

	return strings.Join(out, "\n")
}

// pickLevel draws a severity from the weighted table.
func pickLevel(g *lcg) string {
	total := 0
	for _, l := range logLevels {
		total += l.weight
	}
	roll := g.Next() * float64(total)
	for _, l := range logLevels {
		roll -= float64(l.weight)
		if roll <= 0 {
			return l.name
		}
	}
	return logLevels[0].name
}

// servicePID derives a stable pid from the service name, so the same
// service always logs under the same process.
func servicePID(service string) int {
	h := 0
	for _, c := range service {
		h = ((h << 5) - h + int(c)) & 0xFFFF
	}
	return 30000 + h%20000
}
