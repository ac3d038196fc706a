// Command stegpng hides, recovers, and removes messages embedded in PNG
// files as custom chunks.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/logicossoftware/go-stegpng"
)

var logger = logrus.New()

func main() {
	app := &cli.App{
		Name:  "stegpng",
		Usage: "Hide and extract messages inside PNG files",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			encodeCmd(),
			decodeCmd(),
			removeCmd(),
			printCmd(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func encodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Embed a message in a PNG file",
		ArgsUsage: "PNG_FILE CHUNK_TYPE MESSAGE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the result here instead of in place"},
			&cli.StringFlag{Name: "compression", Value: "zstd", Usage: "Payload compression (none, zip, zstd, lz4, brotli)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return fmt.Errorf("expected PNG_FILE CHUNK_TYPE MESSAGE, got %d args", c.NArg())
			}
			path, typeArg, message := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)
			comp, ok := stegpng.CompressionByName(c.String("compression"))
			if !ok {
				return fmt.Errorf("unknown compression %q", c.String("compression"))
			}
			typ, err := stegpng.ChunkTypeFromString(typeArg)
			if err != nil {
				return err
			}
			img, err := loadPNG(path)
			if err != nil {
				return err
			}
			if err := stegpng.Embed(img, typ, []byte(message), stegpng.WithPayloadCompression(comp)); err != nil {
				return err
			}
			out := c.String("output")
			if out == "" {
				out = path
			}
			if err := savePNG(out, img); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"file":        out,
				"type":        typ.String(),
				"compression": stegpng.CompressionName(comp),
				"bytes":       len(message),
			}).Info("message embedded")
			return nil
		},
	}
}

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Recover the message stored under a chunk type",
		ArgsUsage: "PNG_FILE CHUNK_TYPE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected PNG_FILE CHUNK_TYPE, got %d args", c.NArg())
			}
			typ, err := stegpng.ChunkTypeFromString(c.Args().Get(1))
			if err != nil {
				return err
			}
			img, err := loadPNG(c.Args().Get(0))
			if err != nil {
				return err
			}
			msg, err := stegpng.Extract(img, typ)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(msg, '\n'))
			return err
		},
	}
}

func removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove the first chunk of the given type",
		ArgsUsage: "PNG_FILE CHUNK_TYPE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write the result here instead of in place"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected PNG_FILE CHUNK_TYPE, got %d args", c.NArg())
			}
			path := c.Args().Get(0)
			img, err := loadPNG(path)
			if err != nil {
				return err
			}
			removed, err := img.RemoveChunk(c.Args().Get(1))
			if err != nil {
				return err
			}
			out := c.String("output")
			if out == "" {
				out = path
			}
			if err := savePNG(out, img); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"file":  out,
				"type":  removed.Type().String(),
				"bytes": removed.Length(),
			}).Info("chunk removed")
			return nil
		},
	}
}

func printCmd() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "List every chunk in a PNG file",
		ArgsUsage: "PNG_FILE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected PNG_FILE, got %d args", c.NArg())
			}
			img, err := loadPNG(c.Args().Get(0))
			if err != nil {
				return err
			}
			for i, chunk := range img.Chunks() {
				typ := chunk.Type()
				fmt.Printf("%3d  %s  length=%-8d crc=%08x critical=%-5v safe-to-copy=%v\n",
					i, typ, chunk.Length(), chunk.CRC(), typ.IsCritical(), typ.IsSafeToCopy())
			}
			return nil
		},
	}
}

func loadPNG(path string) (*stegpng.PNG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	logger.WithField("file", path).Debug("reading png")
	return stegpng.Decode(f)
}

func savePNG(path string, img *stegpng.PNG) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := stegpng.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
