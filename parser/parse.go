// Copyright 2024 The EMBLOCS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"errors"
	"fmt"

	"github.com/jmkasunich/emblocs"
)

// Registry resolves a component name to its definition, the way the
// original's static bl_comp_def_t table did, so `instance` commands can
// look components up by the name written in the assembly file.
type Registry map[string]*emblocs.ComponentDef

var typeNames = map[string]emblocs.Type{
	"bit": emblocs.TypeBit, "float": emblocs.TypeFloat,
	"s32": emblocs.TypeS32, "u32": emblocs.TypeU32,
}

var commandKeywords = map[string]bool{
	"instance": true, "signal": true, "thread": true,
	"link": true, "unlink": true, "set": true, "show": true,
}

// state names the token the parser is waiting for next, mirroring
// emblocs_parse.c's bl_parse_state_t enum. Unlike a fixed-arity command
// set, `signal` and `thread` accept a trailing run of (instance, member)
// pairs, so a handful of states loop back on themselves rather than
// always advancing to IDLE.
type state int

const (
	stIdle state = iota
	stInstName
	stInstComponent
	stInstPersonality
	stSignalName
	stSignalTypeOrInst // next token is a type keyword (new) or an instance name (existing, first of a pair)
	stSignalPinName
	stSignalPairInst // loop: waiting for next instance name, or a keyword to end the command
	stThreadName
	stThreadFPOrInst // next token is fp/nofp (new) or an instance name (existing, first of a pair)
	stThreadPeriod
	stThreadFunctName
	stThreadPairInst // loop: waiting for next instance name, or a keyword to end the command
	stLinkInst
	stLinkMember
	stLinkTarget
	stUnlinkInst
	stUnlinkMember
	stSetFirst
	stSetPinName
	stSetValue
	stShowArg
)

// Parser is EMBLOCS's token-driven command parser: one state machine,
// advanced one token at a time by ParseToken, mirroring bl_parse_token's
// single state variable plus scratch fields for the object under
// construction. Every syntactic or semantic failure resets the parser to
// stIdle and is recorded rather than aborting the stream, so a whole
// assembly file is checked in one pass (spec.md §7's "batch assembly
// reports all errors... rather than aborting on the first").
type Parser struct {
	k   *emblocs.Kernel
	reg Registry

	state state
	line  int

	name1, name2 string
	threadFP     emblocs.FPDiscipline

	curSignal emblocs.SignalIdx
	curThread emblocs.ThreadIdx

	setUseSignal bool
	setSignal    emblocs.SignalIdx
	setInstName  string

	errs []error
}

// New creates a Parser bound to k and reg, ready to consume tokens.
func New(k *emblocs.Kernel, reg Registry) *Parser {
	return &Parser{k: k, reg: reg}
}

func (p *Parser) fail(format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...)))
	p.state = stIdle
}

// ParseToken feeds one token into the state machine. It mirrors
// bl_parse_token: called once per token, it either advances the current
// command, completes it (returning to stIdle), or — on a bad token —
// records a diagnostic, discards the token and resets to stIdle, so the
// next token is taken as the possible start of a new command.
func (p *Parser) ParseToken(tok Token) {
	p.line = tok.Line
	text := tok.Text

	switch p.state {
	case stIdle:
		p.startCommand(text)

	case stInstName:
		p.name1 = text
		p.state = stInstComponent

	case stInstComponent:
		def, ok := p.reg[text]
		if !ok {
			p.fail("unknown component '%s'", text)
			return
		}
		p.name2 = text
		if def.NeedsPersonality {
			p.state = stInstPersonality
			return
		}
		if _, err := p.k.NewBlock(p.name1, def, nil); err != nil {
			p.fail("instantiating '%s': %v", p.name1, err)
			return
		}
		p.state = stIdle

	case stInstPersonality:
		def := p.reg[p.name2]
		if _, err := p.k.NewBlock(p.name1, def, text); err != nil {
			p.fail("instantiating '%s': %v", p.name1, err)
			return
		}
		p.state = stIdle

	case stSignalName:
		p.name1 = text
		p.state = stSignalTypeOrInst

	case stSignalTypeOrInst:
		if t, ok := typeNames[text]; ok {
			sig, err := p.k.NewSignal(p.name1, t)
			if err != nil {
				p.fail("creating signal '%s': %v", p.name1, err)
				return
			}
			p.curSignal = sig
			p.state = stSignalPairInst
			return
		}
		sig, ok := p.k.FindSignal(p.name1)
		if !ok {
			p.fail("'%s' is neither a known signal type nor an existing signal", text)
			return
		}
		p.curSignal = sig
		// text is the first instance name of a pin-link pair; reprocess it
		// in that role instead of discarding it, matching "receiving a
		// name re-enters the inner loop of the current command".
		p.name2 = text
		p.state = stSignalPinName

	case stSignalPairInst:
		if commandKeywords[text] {
			p.state = stIdle
			p.startCommand(text)
			return
		}
		p.name2 = text
		p.state = stSignalPinName

	case stSignalPinName:
		block, ok := p.k.FindBlock(p.name2)
		if !ok {
			p.fail("unknown instance '%s'", p.name2)
			return
		}
		pin, ok := p.k.FindPin(block, text)
		if !ok {
			p.fail("instance '%s' has no pin '%s'", p.name2, text)
			return
		}
		if err := p.k.LinkPinSignal(pin, p.curSignal); err != nil {
			p.fail("linking '%s.%s': %v", p.name2, text, err)
			return
		}
		p.state = stSignalPairInst

	case stThreadName:
		p.name1 = text
		p.state = stThreadFPOrInst

	case stThreadFPOrInst:
		switch text {
		case "fp":
			p.threadFP = emblocs.HasFP
			p.state = stThreadPeriod
		case "nofp":
			p.threadFP = emblocs.NoFP
			p.state = stThreadPeriod
		default:
			thread, ok := p.k.FindThread(p.name1)
			if !ok {
				p.fail("'%s' is neither 'fp'/'nofp' nor an existing thread", text)
				return
			}
			p.curThread = thread
			p.name2 = text
			p.state = stThreadFunctName
		}

	case stThreadPeriod:
		period, err := strToU32(text)
		if err != nil {
			p.fail("%v", err)
			return
		}
		thread, err := p.k.NewThread(p.name1, period, p.threadFP)
		if err != nil {
			p.fail("creating thread '%s': %v", p.name1, err)
			return
		}
		p.curThread = thread
		p.state = stThreadPairInst

	case stThreadPairInst:
		if commandKeywords[text] {
			p.state = stIdle
			p.startCommand(text)
			return
		}
		p.name2 = text
		p.state = stThreadFunctName

	case stThreadFunctName:
		block, ok := p.k.FindBlock(p.name2)
		if !ok {
			p.fail("unknown instance '%s'", p.name2)
			return
		}
		funct, ok := p.k.FindFunction(block, text)
		if !ok {
			p.fail("instance '%s' has no function '%s'", p.name2, text)
			return
		}
		if err := p.k.LinkFunctionThread(funct, p.curThread); err != nil {
			p.fail("linking '%s.%s': %v", p.name2, text, err)
			return
		}
		p.state = stThreadPairInst

	case stLinkInst:
		p.name1 = text
		p.state = stLinkMember

	case stLinkMember:
		p.name2 = text
		p.state = stLinkTarget

	case stLinkTarget:
		p.doLink(p.name1, p.name2, text)
		p.state = stIdle

	case stUnlinkInst:
		p.name1 = text
		p.state = stUnlinkMember

	case stUnlinkMember:
		p.doUnlink(p.name1, text)
		p.state = stIdle

	case stSetFirst:
		if sig, ok := p.k.FindSignal(text); ok {
			p.setUseSignal = true
			p.setSignal = sig
			p.state = stSetValue
			return
		}
		p.setUseSignal = false
		p.setInstName = text
		p.state = stSetPinName

	case stSetPinName:
		p.name2 = text
		p.state = stSetValue

	case stSetValue:
		p.doSet(text)
		p.state = stIdle

	case stShowArg:
		p.doShow(text)
		p.state = stIdle
	}
}

// startCommand begins a new command from a keyword token (or, for `show`,
// handles the no-argument form by peeking the fact that there may be no
// further tokens — Finish takes care of that case).
func (p *Parser) startCommand(text string) {
	switch text {
	case "instance":
		p.state = stInstName
	case "signal":
		p.state = stSignalName
	case "thread":
		p.state = stThreadName
	case "link":
		p.state = stLinkInst
	case "unlink":
		p.state = stUnlinkInst
	case "set":
		p.state = stSetFirst
	case "show":
		p.state = stShowArg
	default:
		p.fail("unexpected token '%s', expecting a command", text)
	}
}

func (p *Parser) doLink(instName, member, target string) {
	block, ok := p.k.FindBlock(instName)
	if !ok {
		p.fail("unknown instance '%s'", instName)
		return
	}
	if sig, ok := p.k.FindSignal(target); ok {
		pin, ok := p.k.FindPin(block, member)
		if !ok {
			p.fail("instance '%s' has no pin '%s'", instName, member)
			return
		}
		if err := p.k.LinkPinSignal(pin, sig); err != nil {
			p.fail("linking '%s.%s' to '%s': %v", instName, member, target, err)
		}
		return
	}
	if thread, ok := p.k.FindThread(target); ok {
		funct, ok := p.k.FindFunction(block, member)
		if !ok {
			p.fail("instance '%s' has no function '%s'", instName, member)
			return
		}
		if err := p.k.LinkFunctionThread(funct, thread); err != nil {
			p.fail("linking '%s.%s' to '%s': %v", instName, member, target, err)
		}
		return
	}
	p.fail("'%s' is neither a signal nor a thread", target)
}

func (p *Parser) doUnlink(instName, member string) {
	block, ok := p.k.FindBlock(instName)
	if !ok {
		p.fail("unknown instance '%s'", instName)
		return
	}
	if pin, ok := p.k.FindPin(block, member); ok {
		if err := p.k.UnlinkPin(pin); err != nil {
			p.fail("unlinking '%s.%s': %v", instName, member, err)
		}
		return
	}
	if funct, ok := p.k.FindFunction(block, member); ok {
		if err := p.k.UnlinkFunction(funct); err != nil {
			p.fail("unlinking '%s.%s': %v", instName, member, err)
		}
		return
	}
	p.fail("instance '%s' has no pin or function '%s'", instName, member)
}

func (p *Parser) doSet(valText string) {
	if p.setUseSignal {
		t := p.k.SignalType(p.setSignal)
		v, err := lexValue(t, valText)
		if err != nil {
			p.fail("%v", err)
			return
		}
		p.k.SetSignalValue(p.setSignal, v)
		return
	}
	block, ok := p.k.FindBlock(p.setInstName)
	if !ok {
		p.fail("unknown instance '%s'", p.setInstName)
		return
	}
	pin, ok := p.k.FindPin(block, p.name2)
	if !ok {
		p.fail("instance '%s' has no pin '%s'", p.setInstName, p.name2)
		return
	}
	v, err := lexValue(p.k.PinType(pin), valText)
	if err != nil {
		p.fail("%v", err)
		return
	}
	p.k.SetPinValue(pin, v)
}

func lexValue(t emblocs.Type, s string) (emblocs.Value, error) {
	switch t {
	case emblocs.TypeBit:
		b, err := strToBool(s)
		if err != nil {
			return emblocs.Value{}, err
		}
		return emblocs.BitValue(b), nil
	case emblocs.TypeFloat:
		f, err := strToFloat(s)
		if err != nil {
			return emblocs.Value{}, err
		}
		return emblocs.FloatValue(f), nil
	case emblocs.TypeS32:
		i, err := strToS32(s)
		if err != nil {
			return emblocs.Value{}, err
		}
		return emblocs.S32Value(i), nil
	case emblocs.TypeU32:
		u, err := strToU32(s)
		if err != nil {
			return emblocs.Value{}, err
		}
		return emblocs.U32Value(u), nil
	default:
		return emblocs.Value{}, fmt.Errorf("'%s' has no settable type", s)
	}
}

// doShow handles `show [all|memory|instance|signal|thread|NAME]`,
// mirroring bl_parse_line's dispatch into emblocs_show.c plus the
// grammar table's bare-NAME form (look the name up in every namespace).
func (p *Parser) doShow(arg string) {
	switch arg {
	case "all":
		p.k.ShowAllBlocks()
		p.k.ShowAllSignals()
		p.k.ShowAllThreads()
	case "memory":
		p.k.ShowMemory()
	case "instance":
		p.k.ShowAllBlocks()
	case "signal":
		p.k.ShowAllSignals()
	case "thread":
		p.k.ShowAllThreads()
	default:
		if block, ok := p.k.FindBlock(arg); ok {
			p.k.ShowBlock(block)
			return
		}
		if sig, ok := p.k.FindSignal(arg); ok {
			p.k.ShowSignal(sig)
			return
		}
		if thread, ok := p.k.FindThread(arg); ok {
			p.k.ShowThread(thread)
			return
		}
		p.fail("'%s' is not a known instance, signal, or thread", arg)
	}
}

// Finish completes any command still pending at end of input. A bare
// `show` with no argument dumps everything, matching the grammar table's
// `all` default; any other state left pending at EOF is a truncated
// command and is reported as an error.
func (p *Parser) Finish() error {
	switch p.state {
	case stIdle:
		// nothing pending
	case stShowArg:
		p.k.ShowAllBlocks()
		p.k.ShowAllSignals()
		p.k.ShowAllThreads()
	case stSignalPairInst, stThreadPairInst:
		// a signal/thread command with no trailing pairs is complete.
	default:
		p.errs = append(p.errs, fmt.Errorf("line %d: unexpected end of input", p.line))
	}
	p.state = stIdle
	if len(p.errs) > 0 {
		return errors.Join(p.errs...)
	}
	return nil
}

// ParseTokens parses a full pre-lexed token stream and returns every
// error encountered, joined, rather than stopping at the first one —
// the batch-oriented entry point spec.md §6.2 calls out alongside the
// incremental ParseToken, and spec.md §7's "report all errors in one
// pass" behavior.
func ParseTokens(k *emblocs.Kernel, reg Registry, tokens []Token) error {
	p := New(k, reg)
	for _, tok := range tokens {
		p.ParseToken(tok)
	}
	return p.Finish()
}

// ParseLine lexes and executes a single line of assembly-file text, e.g.
// as typed interactively at a REPL.
func ParseLine(k *emblocs.Kernel, reg Registry, line string) error {
	return ParseTokens(k, reg, Tokenize([]byte(line)))
}

// ParseFile lexes and executes an entire assembly file's contents.
func ParseFile(k *emblocs.Kernel, reg Registry, contents []byte) error {
	return ParseTokens(k, reg, Tokenize(contents))
}
