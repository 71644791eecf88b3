package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/querycache"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/storefront"
	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/lifecycle"
)

func newApp(out io.Writer, connect connector) *cli.App {
	withClient := func(fn func(c *cli.Context, client *storefront.Client) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			client, release, err := connect(c)
			if err != nil {
				return err
			}
			defer release()
			return fn(c, client)
		}
	}
	asCourier := func(fn func(c *cli.Context, client *storefront.Client) error) cli.ActionFunc {
		return withClient(func(c *cli.Context, client *storefront.Client) error {
			if err := ensureCourier(c, client); err != nil {
				return err
			}
			return fn(c, client)
		})
	}
	filterFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Value: string(storefront.FilterAll), Usage: "order status to show, or all"}
	}

	return &cli.App{
		Name:      "courierwatch",
		Usage:     "watch and advance storefront orders",
		Writer:    out,
		ErrWriter: out,
		// exit codes are resolved by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Value: "http://localhost:8080", EnvVars: []string{"STOREFRONT_URL"}, Usage: "storefront backend base URL"},
			&cli.StringFlag{Name: "redis", EnvVars: []string{"COURIERWATCH_REDIS"}, Usage: "redis address for persisting the courier session"},
			&cli.StringFlag{Name: "pin", EnvVars: []string{"COURIER_PIN"}, Usage: "courier PIN used when no session is stored"},
			&cli.DurationFlag{Name: "interval", Value: 15 * time.Second, Usage: "order list refresh interval"},
			&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "exchange the courier PIN for a session",
				Action: withClient(func(c *cli.Context, client *storefront.Client) error {
					pin := c.String("pin")
					if c.Args().Present() {
						pin = c.Args().First()
					}
					if err := client.GrantCourierAccess(c.Context, pin); err != nil {
						return describe(err)
					}
					fmt.Fprintln(out, "courier access granted")
					return nil
				}),
			},
			{
				Name:  "logout",
				Usage: "forget the stored session",
				Action: withClient(func(c *cli.Context, client *storefront.Client) error {
					client.Logout(c.Context)
					fmt.Fprintln(out, "signed out")
					return nil
				}),
			},
			{
				Name:  "orders",
				Usage: "print the order dashboard once",
				Flags: []cli.Flag{filterFlag()},
				Action: asCourier(func(c *cli.Context, client *storefront.Client) error {
					filter, err := storefront.ParseFilter(c.String("filter"))
					if err != nil {
						return describe(err)
					}
					orders, err := client.AllOrders(c.Context)
					if err != nil {
						return describe(err)
					}
					return renderDashboard(out, storefront.BuildDashboard(orders, filter))
				}),
			},
			{
				Name:  "watch",
				Usage: "reprint the order dashboard whenever it changes",
				Flags: []cli.Flag{filterFlag()},
				Action: asCourier(func(c *cli.Context, client *storefront.Client) error {
					filter, err := storefront.ParseFilter(c.String("filter"))
					if err != nil {
						return describe(err)
					}
					return watch(c, client, out, filter)
				}),
			},
			{
				Name:      "advance",
				Usage:     "move an order to its next status",
				ArgsUsage: "<order-id>",
				Action: asCourier(func(c *cli.Context, client *storefront.Client) error {
					order, err := loadOrder(c, client)
					if err != nil {
						return err
					}
					next, err := client.AdvanceOrder(c.Context, *order)
					if err != nil {
						return describe(err)
					}
					fmt.Fprintf(out, "%s: %s -> %s\n", lifecycle.ShortID(order.ID), lifecycle.Label(order.Status), lifecycle.Label(next))
					return nil
				}),
			},
			{
				Name:      "cancel",
				Usage:     "cancel an open order",
				ArgsUsage: "<order-id>",
				Action: asCourier(func(c *cli.Context, client *storefront.Client) error {
					id, err := orderID(c)
					if err != nil {
						return err
					}
					if err := client.CancelOrder(c.Context, id); err != nil {
						return describe(err)
					}
					fmt.Fprintf(out, "%s: cancelled\n", lifecycle.ShortID(id))
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "remove an order",
				ArgsUsage: "<order-id>",
				Action: asCourier(func(c *cli.Context, client *storefront.Client) error {
					id, err := orderID(c)
					if err != nil {
						return err
					}
					if err := client.DeleteOrder(c.Context, id); err != nil {
						return describe(err)
					}
					fmt.Fprintf(out, "%s: deleted\n", lifecycle.ShortID(id))
					return nil
				}),
			},
		},
	}
}

func ensureCourier(c *cli.Context, client *storefront.Client) error {
	if client.Session().HasCourierAccess() {
		return nil
	}
	pin := c.String("pin")
	if pin == "" {
		return cli.Exit("courier access required: run login or pass --pin", 2)
	}
	if err := client.GrantCourierAccess(c.Context, pin); err != nil {
		return describe(err)
	}
	return nil
}

func orderID(c *cli.Context) (string, error) {
	if !c.Args().Present() {
		return "", cli.Exit("order id is required", 2)
	}
	return c.Args().First(), nil
}

func loadOrder(c *cli.Context, client *storefront.Client) (*model.Order, error) {
	id, err := orderID(c)
	if err != nil {
		return nil, err
	}
	order, err := client.Order(c.Context, id)
	if err != nil {
		return nil, describe(err)
	}
	if order == nil {
		return nil, describe(domainErrors.ErrNotFound)
	}
	return order, nil
}

func watch(c *cli.Context, client *storefront.Client, out io.Writer, filter storefront.Filter) error {
	sub := client.WatchAllOrders()
	defer sub.Close()

	for {
		select {
		case <-c.Context.Done():
			return nil
		case snap, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			if snap.Err != nil && snap.Status == querycache.StatusError {
				fmt.Fprintf(out, "refresh failed: %v\n", snap.Err)
			}
			orders, ok := querycache.Data[[]model.Order](snap)
			if !ok || snap.Fetching {
				continue
			}
			if err := renderDashboard(out, storefront.BuildDashboard(orders, filter)); err != nil {
				return err
			}
		}
	}
}

// describe turns domain failures into courier-facing messages with a stable
// exit code per error kind.
func describe(err error) error {
	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		return err
	}
	code := 1
	switch domainErrors.Classify(err) {
	case domainErrors.KindAuthorization:
		code = 3
	case domainErrors.KindNotFound:
		code = 4
	case domainErrors.KindConflict:
		code = 5
	case domainErrors.KindValidation:
		code = 2
	}
	return cli.Exit(err.Error(), code)
}
