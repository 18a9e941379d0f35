package shop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/env"
	"github.com/stellarburgers/burger/cmd/burger/storefront"
	"github.com/stellarburgers/burger/cmd/burger/subcommands/common"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/youta-t/flarc"
)

const prompt = "burger> "

var help = strings.TrimSpace(`
list [bun|main|sauce]  show ingredients
add ID                 put the ingredient into the burger. a bun replaces the bun.
rm POSITION|KEY        remove a filling or sauce
mv FROM TO             move a filling or sauce from a position to another
clear                  start over
show                   show the burger and its price
place                  order the burger
dismiss                forget the last order
help                   show this help
quit                   leave the shop
`)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Build a burger interactively, and order it.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Build a burger interactively, and order it.

Commands are read from stdin, line by line. Type "help" to see them.
You need to log in with "burger auth login" to place orders.
`),
	)
}

type session struct {
	sf  *storefront.Storefront
	out io.Writer
	log *logrus.Entry
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *logrus.Entry,
		_ env.BurgerEnv,
		sf *storefront.Storefront,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		if err := sf.Start(ctx); err != nil {
			return fmt.Errorf("the shop is not open: %w", err)
		}
		if user, ok := sf.Session.User(); ok {
			fmt.Fprintf(cl.Stdout(), "welcome back, %s.\n", user.Name)
		}

		s := &session{sf: sf, out: cl.Stdout(), log: logger}
		scanner := bufio.NewScanner(cl.Stdin())
		for {
			fmt.Fprint(cl.Stderr(), prompt)
			if !scanner.Scan() {
				return scanner.Err()
			}
			words := strings.Fields(scanner.Text())
			if len(words) == 0 {
				continue
			}
			if words[0] == "quit" || words[0] == "exit" {
				return nil
			}
			if err := s.exec(ctx, words[0], words[1:]); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fmt.Fprintf(s.out, "error: %s\n", err)
			}
		}
	}
}

var errArgs = errors.New("wrong arguments. try help")

func (s *session) exec(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprintln(s.out, help)
		return nil
	case "list":
		if 1 < len(args) {
			return errArgs
		}
		category := apiingr.Category("")
		if len(args) == 1 {
			category = apiingr.Category(args[0])
			if !category.Valid() {
				return fmt.Errorf("unknown type: %s", args[0])
			}
		}
		return s.list(category)
	case "add":
		if len(args) != 1 {
			return errArgs
		}
		return s.add(args[0])
	case "rm":
		if len(args) != 1 {
			return errArgs
		}
		return s.remove(args[0])
	case "mv":
		if len(args) != 2 {
			return errArgs
		}
		return s.move(args[0], args[1])
	case "clear":
		s.sf.Builder.Clear()
		fmt.Fprintln(s.out, "the burger is cleared")
		return nil
	case "show":
		return s.show()
	case "place":
		return s.place(ctx)
	case "dismiss":
		s.sf.Orders.ClearPlacement()
		fmt.Fprintln(s.out, "dismissed")
		return nil
	default:
		return fmt.Errorf("unknown command: %s. try help", command)
	}
}

func (s *session) list(category apiingr.Category) error {
	items := s.sf.Catalog.Snapshot().Items
	if category != "" {
		items = s.sf.Catalog.ByCategory(category)
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tPRICE")
	for _, i := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", i.Id, i.Type, i.Name, i.Price)
	}
	return w.Flush()
}

func (s *session) add(id string) error {
	ingr, ok := s.sf.Catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown ingredient: %s", id)
	}
	item := s.sf.Builder.Add(ingr)
	if ingr.IsBun() {
		fmt.Fprintf(s.out, "bun: %s\n", ingr.Name)
	} else {
		fmt.Fprintf(s.out, "%d: %s (%s)\n", s.sf.Builder.Len(), ingr.Name, item.Key)
	}
	return nil
}

// position parses 1-based position of items in the builder.
func (s *session) position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, err
	}
	if n < 1 || s.sf.Builder.Len() < n {
		return 0, fmt.Errorf("no items at %d", n)
	}
	return n - 1, nil
}

func (s *session) remove(arg string) error {
	items := s.sf.Builder.Snapshot().Items
	key := arg
	if _, err := strconv.Atoi(arg); err == nil {
		nth, err := s.position(arg)
		if err != nil {
			return err
		}
		key = items[nth].Key
	}
	for _, i := range items {
		if i.Key == key {
			s.sf.Builder.Remove(key)
			fmt.Fprintf(s.out, "removed: %s\n", i.Name)
			return nil
		}
	}
	return fmt.Errorf("no items with %s", arg)
}

func (s *session) move(fromArg, toArg string) error {
	from, err := s.position(fromArg)
	if err != nil {
		return err
	}
	to, err := s.position(toArg)
	if err != nil {
		return err
	}
	s.sf.Builder.Reorder(from, to)
	return s.show()
}

func (s *session) show() error {
	snap := s.sf.Builder.Snapshot()
	if snap.Empty() {
		fmt.Fprintln(s.out, "the burger is empty. add a bun first")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	if snap.Bun != nil {
		fmt.Fprintf(w, "top\t%s\t%d\n", snap.Bun.Name, snap.Bun.Price)
	} else {
		fmt.Fprintln(w, "top\t(choose a bun)\t")
	}
	for nth, i := range snap.Items {
		fmt.Fprintf(w, "%d\t%s\t%d\n", nth+1, i.Name, i.Price)
	}
	if snap.Bun != nil {
		fmt.Fprintf(w, "bottom\t%s\t%d\n", snap.Bun.Name, snap.Bun.Price)
	} else {
		fmt.Fprintln(w, "bottom\t(choose a bun)\t")
	}
	fmt.Fprintf(w, "total\t\t%d\n", s.sf.Price())
	return w.Flush()
}

func (s *session) place(ctx context.Context) error {
	placement, err := s.sf.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	s.log.WithField("number", placement.Number).Info("order is placed")
	fmt.Fprintf(s.out, "order #%d is placed: %s\n", placement.Number, placement.Name)
	return nil
}
