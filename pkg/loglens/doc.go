// Package loglens analyzes plain-text log files: it parses each line into a
// structured entry, mines recurring error patterns, flags anomalies and
// derives insights, timelines and response-time statistics.
//
// Quick start:
//
//	l := loglens.New()
//	res, _, err := l.Analyze(content, "app.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.ErrorCount, len(res.Patterns))
//
// An Analyzer holds no per-call state and is safe for concurrent use.
package loglens
