package settings

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BERSIM"

//Settings are the values shared by every command.
type Settings struct {
	Verbose bool
	Seed    uint64
	Threads int
	LogFile string
}

func init() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("seed", 0)
	viper.SetDefault("threads", 0)
	viper.SetDefault("logfile", "")
}

//Load reads configFile (when given) and the BERSIM_ environment into viper.
// Flags already bound to viper keys take precedence over both.
func Load(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return nil
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %v: %w", configFile, err)
	}
	return nil
}

//Current returns the resolved settings. A zero seed is replaced once by a time
// based seed and zero threads means one per CPU.
func Current() Settings {
	s := Settings{
		Verbose: viper.GetBool("verbose"),
		Seed:    uint64(viper.GetInt64("seed")),
		Threads: viper.GetInt("threads"),
		LogFile: viper.GetString("logfile"),
	}
	if s.Seed == 0 {
		s.Seed = uint64(time.Now().UnixNano())
		viper.Set("seed", int64(s.Seed))
	}
	if s.Threads <= 0 {
		s.Threads = runtime.NumCPU()
	}
	return s
}

//SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case sig := <-sigs:
			fmt.Println()
			fmt.Println(sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}
