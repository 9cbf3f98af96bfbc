// Package pipeline runs the four stages of a conversion in order:
// fetch, transcode, tag and report.
//
// A Pipeline moves through the states
//
//	Idle → Fetching → Transcoding → TaggingMetadata → Reporting → Done
//
// and stops in FetchFailed or ConvertFailed when those stages fail. Both
// failures come back as an *ExitError carrying the process exit code.
// Problems while tagging or probing only produce warnings.
//
// Example:
//
//	p := pipeline.New(settings, pipeline.Deps{
//	    Source:   youtube.NewSource(client),
//	    Prompter: metadata.NewLinePrompter(os.Stdin, os.Stderr),
//	    Out:      os.Stdout,
//	}, logger, pipeline.Hooks{
//	    OnProgress: func(e pipeline.ProgressEvent) { fmt.Println(e.Message) },
//	})
//
//	outcome, err := p.Run(ctx, url)
//	var exitErr *pipeline.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package pipeline
