package gol

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// ioState is the internal ioState of the io goroutine.
// Requests are handed over one at a time through operation, guarded by cond.
type ioState struct {
	params    Params
	operation *ioOperation
	cond      *sync.Cond
}

// ioCommand allows requesting behaviour from the io (pgm) goroutine.
type ioCommand uint8

const (
	ioOutput ioCommand = iota
	ioQuit
)

type ioOperation struct {
	command   ioCommand
	filename  string
	data      []byte
	completed bool
	err       error
}

// writePgmImage writes one byte per cell, 255 for alive and 0 for dead.
func (io *ioState) writePgmImage(operation *ioOperation) error {
	if err := os.MkdirAll(io.params.OutDir, os.ModePerm); err != nil {
		return err
	}

	path := filepath.Join(io.params.OutDir, operation.filename+".pgm")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	_, _ = writer.WriteString("P5\n")
	_, _ = writer.WriteString(strconv.Itoa(io.params.Width))
	_, _ = writer.WriteString(" ")
	_, _ = writer.WriteString(strconv.Itoa(io.params.Height))
	_, _ = writer.WriteString("\n")
	_, _ = writer.WriteString(strconv.Itoa(255))
	_, _ = writer.WriteString("\n")
	if _, err = writer.Write(operation.data); err != nil {
		return err
	}
	if err = writer.Flush(); err != nil {
		return err
	}
	if err = file.Sync(); err != nil {
		return err
	}

	log.Println("File", path, "output done!")
	return nil
}

// startIo should be the entrypoint of the io goroutine.
func startIo(io *ioState) {

	io.cond.L.Lock()
	defer io.cond.L.Unlock()

	for {
		for io.operation == nil {
			io.cond.Wait()
		}
		operation := io.operation
		io.operation = nil

		if operation.command == ioQuit {
			operation.completed = true
			io.cond.Broadcast()
			return
		}

		// Let the next request queue up while this one is written
		io.cond.L.Unlock()
		switch operation.command {
		case ioOutput:
			operation.err = io.writePgmImage(operation)
		default:
			operation.err = fmt.Errorf("unknown io command %d", operation.command)
		}
		io.cond.L.Lock()

		operation.completed = true
		io.cond.Broadcast()
	}
}

// Initiate an IO request, waiting for the previous one to be picked up
func (io *ioState) sendIoRequest(operation *ioOperation) {
	io.cond.L.Lock()
	for io.operation != nil {
		io.cond.Wait()
	}
	io.operation = operation
	io.cond.Broadcast()
	io.cond.L.Unlock()
}

// Wait until an IO operation completed
func (io *ioState) waitIoRequest(operation *ioOperation) error {
	io.cond.L.Lock()
	for !operation.completed {
		io.cond.Wait()
	}
	io.cond.L.Unlock()
	return operation.err
}

// Send a signal to IO thread to quit
func (io *ioState) quit() {
	operation := &ioOperation{command: ioQuit}
	io.sendIoRequest(operation)
	io.waitIoRequest(operation)
}

// pgmData converts a grid into PGM pixel bytes.
func pgmData(grid []bool) []byte {
	data := make([]byte, len(grid))
	for i, alive := range grid {
		if alive {
			data[i] = 255
		}
	}
	return data
}
