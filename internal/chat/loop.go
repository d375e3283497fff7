package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// exitTokens end the session without invoking the orchestrator.
var exitTokens = map[string]bool{
	"quit":      true,
	"exit":      true,
	"bye":       true,
	"довиждане": true,
	"чао":       true,
	"изход":     true,
}

// IsExitCommand reports whether the input ends the session.
func IsExitCommand(input string) bool {
	return exitTokens[strings.ToLower(strings.TrimSpace(input))]
}

var (
	bannerColor = color.New(color.BgBlue, color.FgWhite)
	introColor  = color.New(color.FgCyan)
	tipColor    = color.New(color.FgYellow)
	youColor    = color.New(color.FgGreen)
	botColor    = color.New(color.FgBlue)
)

// Loop runs the interactive conversation until an exit token or EOF.
type Loop struct {
	bot *Bot
	in  io.Reader
	out io.Writer
}

// NewLoop creates an interactive loop over the given streams.
func NewLoop(bot *Bot, in io.Reader, out io.Writer) *Loop {
	return &Loop{bot: bot, in: in, out: out}
}

// Run reads one line at a time, produces one response per line, and
// returns when the user says goodbye or the input stream closes.
func (l *Loop) Run(ctx context.Context) error {
	l.printBanner()

	scanner := bufio.NewScanner(l.in)
	for {
		fmt.Fprint(l.out, youColor.Sprint("You: "))

		if !scanner.Scan() {
			fmt.Fprintf(l.out, "\n\n%s\n", botColor.Sprint("[BOT] "+goodbyeMessage(l.bot.Session().Language)))
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())

		if IsExitCommand(input) {
			fmt.Fprintf(l.out, "\n%s%s\n", botColor.Sprint("[BOT] Fibank Assistant: "), goodbyeMessage(l.bot.Session().Language))
			return nil
		}

		if input == "" {
			continue
		}

		response := l.respondWithSpinner(ctx, input)

		fmt.Fprintf(l.out, "\n%s\n", botColor.Sprint("[BOT] Fibank Assistant:"))
		fmt.Fprintln(l.out, response)
		fmt.Fprintf(l.out, "\n%s\n", strings.Repeat("-", 60))
	}
}

func (l *Loop) respondWithSpinner(ctx context.Context, input string) string {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(l.out))
	s.Suffix = " ..."
	s.Start()
	defer s.Stop()

	return l.bot.GenerateResponse(ctx, input)
}

func (l *Loop) printBanner() {
	fmt.Fprintf(l.out, "\n%s\n", bannerColor.Sprint(" FIBANK ВИРТУАЛЕН АСИСТЕНТ "))
	fmt.Fprintln(l.out, introColor.Sprint("Добре дошли във виртуалния асистент на Fibank!"))
	fmt.Fprintln(l.out, introColor.Sprint("Мога да ви помогна с информация за нашите кредитни карти и кредити."))
	fmt.Fprintln(l.out, introColor.Sprint("Можете да задавате въпроси на български или английски език."))
	fmt.Fprintln(l.out, introColor.Sprint("Напишете 'quit', 'exit' или 'довиждане' за край."))
	fmt.Fprintf(l.out, "\n%s\n\n", tipColor.Sprint("[TIP] Опитайте: 'Какви кредитни карти предлагате?' или 'Разкажете ми за кредитите'"))
}
