package xlate

// Options is the root command that groups sub-commands. The struct tags are
// interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config  string      `short:"f" long:"config" description:"config YAML path or URL"`
	Version bool        `short:"v" long:"version" description:"print version and exit"`
	Serve   *ServeCmd   `command:"serve" description:"Start HTTP server"`
	Debug   *DebugCmd   `command:"debug" description:"Enable, disable or inspect debug mode"`
	Pull    *PullCmd    `command:"pull" description:"Pull the configured model into Ollama"`
	Show    *VersionCmd `command:"version" description:"Print version"`
}

// Init instantiates the sub-command referenced by the first argument so that
// flags.Parse can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "debug":
		o.Debug = &DebugCmd{}
	case "pull":
		o.Pull = &PullCmd{}
	case "version":
		o.Show = &VersionCmd{}
	}
}
