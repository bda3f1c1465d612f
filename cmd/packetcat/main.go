// Command packetcat reads framed packets from a serial device (or a plain
// file, for replaying a captured session) and prints each decoded packet
// as JSON. It exists to exercise the resumable decoder against a real,
// slow io.Reader — the same role cmd/actisense/main.go and
// cmd/n2kreader/main.go play for the teacher's device readers.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tarm/serial"

	codec "github.com/relayfish/playcodec"
	"github.com/relayfish/playcodec/fieldtype"
	"github.com/relayfish/playcodec/packetdefs"
	"github.com/relayfish/playcodec/streamio"
)

func main() {
	deviceAddr := flag.String("device", "/dev/ttyUSB0", "path to the device to read packets from")
	isFile := flag.Bool("is-file", false, "consider device as an ordinary file instead of a serial port")
	baudRate := flag.Int("baud", 115200, "device baud rate")
	printRaw := flag.Bool("raw", false, "enable the codec's xxhash frame-digest debug log; the digest is logged when a frame is encoded, not when one is decoded")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *deviceAddr == "" {
		log.Fatal("# missing device path\n")
	}

	var reader io.Reader
	var err error
	if *isFile {
		reader, err = os.OpenFile(*deviceAddr, os.O_RDONLY, 0)
	} else {
		reader, err = serial.OpenPort(&serial.Config{
			Name:        *deviceAddr,
			Baud:        *baudRate,
			ReadTimeout: 100 * time.Millisecond,
			Size:        8,
		})
	}
	if err != nil {
		log.Fatal(err)
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	defs := packetdefs.Demo()
	fmt.Printf("# Loaded %s\n", defs)

	c := codec.Default
	c.DebugLogFrameDigest = *printRaw
	c.LogFunc = func(format string, args ...any) { fmt.Printf(format, args...) }

	stream := codec.NewStreamAdapter(streamio.NewBufferedReadStream(reader))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		packet := fieldtype.NewDecodablePacket(defs)
		decoder, err := c.NewDecoder(stream, packet)
		if err != nil {
			log.Fatal(err)
		}
		var decodeErr error
		for !decoder.Done() {
			if err := decoder.Poll(); err != nil {
				if errors.Is(err, codec.ErrNeedMore) {
					time.Sleep(10 * time.Millisecond)
					continue
				}
				decodeErr = err
				fmt.Printf("# ERROR decoding packet: %v\n", err)
				break
			}
		}
		if decodeErr != nil {
			continue
		}

		out, err := json.Marshal(flatten(packet))
		if err != nil {
			fmt.Printf("# ERROR marshaling packet: %v\n", err)
			continue
		}
		fmt.Println(string(out))
	}
}

// flatten renders a decoded packet's group fields as a plain map for JSON
// output. It only handles the scalar categories directly; nested
// GROUP/LIST values are rendered as their Data() fallback.
func flatten(p *fieldtype.Packet) map[string]any {
	out := map[string]any{
		"identifier": p.DefinitionIdentifier(),
		"version":    p.DefinitionVersion(),
	}
	g := p.Group()
	if g == nil {
		return out
	}
	fields := map[string]any{}
	for _, fd := range g.Fields() {
		fields[fd.Name] = fd.Field.Data()
	}
	out["fields"] = fields
	return out
}
