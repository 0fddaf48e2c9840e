package xlayout_test

import (
	"context"
	"fmt"

	"github.com/trickstertwo/xlayout"
)

func ExampleCompose() {
	l := xlayout.Compose(
		xlayout.LiteralRenderer("["),
		xlayout.LevelRenderer{},
		xlayout.LiteralRenderer("] "),
		xlayout.MessageRenderer{},
	)
	ev := &xlayout.Event{Level: xlayout.LevelWarn, Message: "disk almost full"}
	fmt.Println(l.Render(ev))
	// Output: [warn] disk almost full
}

func ExamplePushContext() {
	ctx, scope := xlayout.PushContext(context.Background(), "order-57")
	defer scope.Release()

	ev := (&xlayout.Event{Message: "charge card"}).WithContext(ctx)
	l := xlayout.Compose(
		xlayout.MessageRenderer{},
		xlayout.LiteralRenderer(" scope="),
		xlayout.ScopesRenderer{},
	)
	fmt.Println(l.Render(ev))
	// Output: charge card scope=order-57
}

func ExampleRouter_Dispatch() {
	layout := xlayout.Compose(
		xlayout.LevelRenderer{},
		xlayout.LiteralRenderer(" "),
		xlayout.MessageRenderer{},
	)
	stdout := xlayout.DestinationFunc(func(_ *xlayout.Event, rendered []byte) error {
		fmt.Println(string(rendered))
		return nil
	})
	rt := xlayout.NewRouter(&xlayout.Rule{
		Pattern: "app.*",
		Filter:  xlayout.NewStaticRange(xlayout.LevelWarn, xlayout.LevelFatal),
		Targets: []xlayout.Target{{Layout: layout, Dest: stdout}},
	})

	rt.Dispatch(&xlayout.Event{Level: xlayout.LevelError, Logger: "app.db", Message: "connection lost"})
	rt.Dispatch(&xlayout.Event{Level: xlayout.LevelDebug, Logger: "app.db", Message: "filtered out"})
	// Output: error connection lost
}
