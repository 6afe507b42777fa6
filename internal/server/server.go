// Package server implements the passphrase service: a RESP server, so any
// Valkey or Redis client can ask it for passphrases.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/redcon"

	"github.com/sts10/phraze/internal/diceware"
	"github.com/sts10/phraze/internal/op"
	"github.com/sts10/phraze/internal/wordlist"
)

// CustomCode selects the custom list with the LIST option.
const CustomCode = "custom"

// Limits applied when Config leaves them unset.
const (
	DefaultMaxCount = 1024
	DefaultMaxWords = 256
)

// maxLevel bounds STRENGTH so the implied entropy can't overflow.
const maxLevel = 1 << 16

type Config struct {
	DefaultList wordlist.Choice
	Custom      *wordlist.Custom // optional; the default source when set
	Separator   string           // used when a request has no SEP option
	MaxCount    int
	MaxWords    int
}

type Server struct {
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	close func() error // set in ServeTCP
}

func New(cfg Config, logger *slog.Logger) *Server {
	if !cfg.DefaultList.Valid() {
		cfg.DefaultList = wordlist.Default
	}
	if cfg.MaxCount < 1 {
		cfg.MaxCount = DefaultMaxCount
	}
	if cfg.MaxWords < 1 {
		cfg.MaxWords = DefaultMaxWords
	}
	return &Server{cfg: cfg, logger: logger}
}

func (s *Server) ServeTCP(ln net.Listener) error {
	rs := redcon.NewServerNetwork("tcp", ln.Addr().String(), s.handle, s.accept, s.onClosed)
	s.mu.Lock()
	s.close = rs.Close
	s.mu.Unlock()
	return rs.Serve(ln)
}

func (s *Server) Close() error {
	s.mu.Lock()
	closeFn := s.close
	s.mu.Unlock()
	if closeFn == nil {
		return nil
	}
	return closeFn()
}

func (s *Server) handle(conn redcon.Conn, cmd redcon.Command) {
	name := op.New(cmd.Args[0])
	var args []string
	if len(cmd.Args) > 1 {
		args = make([]string, 0, len(cmd.Args))
		for _, arg := range cmd.Args[1:] {
			args = append(args, string(arg))
		}
	}
	switch name {
	case op.Generate:
		s.generate(conn, args)
	case op.Entropy:
		s.entropy(conn, args)
	case op.Lists:
		s.lists(conn, args)
	case op.Ping:
		s.ping(conn, args)
	case op.Quit:
		s.quit(conn, args)
	default:
		conn.WriteError(fmt.Sprintf("ERR unknown command '%s'", name))
	}
}

// accept gives every connection its own random generator, so handlers never
// share one.
func (s *Server) accept(conn redcon.Conn) bool {
	conn.SetContext(diceware.NewRand())
	s.logger.Debug("accepted connection", "remote_addr", conn.RemoteAddr())
	return true
}

func (s *Server) onClosed(conn redcon.Conn, err error) {
	if err != nil {
		s.logger.Debug("connection closed", "remote_addr", conn.RemoteAddr(), "err", err)
	}
}

func (s *Server) generate(conn redcon.Conn, args []string) {
	req, err := s.parse(args, true)
	if err != nil {
		writeErr(conn, err)
		return
	}
	g, err := s.plan(req)
	if err != nil {
		writeErr(conn, err)
		return
	}
	if req.count > s.cfg.MaxCount {
		writeErr(conn, fmt.Errorf("count %d exceeds maximum of %d", req.count, s.cfg.MaxCount))
		return
	}
	r, ok := conn.Context().(*rand.Rand)
	if !ok {
		writeErr(conn, errors.New("connection has no random generator"))
		return
	}
	out := make([]string, req.count)
	for i := range out {
		if out[i], err = g.Generate(r); err != nil {
			writeErr(conn, err)
			return
		}
	}
	s.logger.Debug("generated passphrases", "count", req.count, "words", g.Words)
	conn.WriteArray(len(out))
	for _, p := range out {
		conn.WriteBulkString(p)
	}
}

func (s *Server) entropy(conn redcon.Conn, args []string) {
	req, err := s.parse(args, false)
	if err != nil {
		writeErr(conn, err)
		return
	}
	g, err := s.plan(req)
	if err != nil {
		writeErr(conn, err)
		return
	}
	conn.WriteBulkString(fmt.Sprintf("%d %.2f", g.Words, g.Entropy()))
}

func (s *Server) lists(conn redcon.Conn, args []string) {
	if len(args) > 0 {
		writeErrArity(conn, op.Lists)
		return
	}
	choices := wordlist.Choices()
	n := len(choices)
	if s.cfg.Custom != nil {
		n++
	}
	conn.WriteArray(n)
	for _, c := range choices {
		conn.WriteBulkString(fmt.Sprintf("%s %d %s", c.Code(), c.ExpectedLen(), c.DisplayName()))
	}
	if s.cfg.Custom != nil {
		conn.WriteBulkString(fmt.Sprintf("%s %d Custom list", CustomCode, s.cfg.Custom.Len()))
	}
}

func (s *Server) ping(conn redcon.Conn, args []string) {
	conn.WriteString("PONG")
}

func (s *Server) quit(conn redcon.Conn, args []string) {
	conn.WriteString("OK")
	conn.Close()
}

// request is a parsed GENERATE or ENTROPY command.
type request struct {
	list     string
	strength diceware.Strength
	sep      string
	title    bool
	count    int
}

// parse reads option keywords and their values. Output options (SEP, TITLE
// and COUNT) are only accepted by GENERATE.
func (s *Server) parse(args []string, withOutput bool) (request, error) {
	req := request{sep: s.cfg.Separator, count: 1}
	for i := 0; i < len(args); i++ {
		key := strings.ToLower(args[i])
		if key == op.OptTitle && withOutput {
			req.title = true
			continue
		}
		switch key {
		case op.OptList, op.OptWords, op.OptEntropy, op.OptStrength:
		case op.OptSep, op.OptCount:
			if !withOutput {
				return request{}, fmt.Errorf("syntax error: unexpected option '%s'", args[i])
			}
		default:
			return request{}, fmt.Errorf("syntax error: unexpected option '%s'", args[i])
		}
		if i+1 >= len(args) {
			return request{}, fmt.Errorf("syntax error: option '%s' needs a value", args[i])
		}
		i++
		val := args[i]
		var err error
		switch key {
		case op.OptList:
			req.list = val
		case op.OptWords:
			req.strength.Words, err = positiveInt(key, val)
		case op.OptEntropy:
			req.strength.MinEntropy, err = positiveFloat(key, val)
		case op.OptStrength:
			req.strength.Level, err = positiveInt(key, val)
			if err == nil && req.strength.Level > maxLevel {
				err = fmt.Errorf("STRENGTH must be at most %d", maxLevel)
			}
		case op.OptSep:
			req.sep = val
		case op.OptCount:
			req.count, err = positiveInt(key, val)
		}
		if err != nil {
			return request{}, err
		}
	}
	if req.strength.Words > 0 && (req.strength.MinEntropy > 0 || req.strength.Level > 0) {
		return request{}, errors.New("WORDS can't be combined with ENTROPY or STRENGTH")
	}
	return req, nil
}

// plan resolves the request's source and word count.
func (s *Server) plan(req request) (*diceware.Generator, error) {
	src, err := s.source(req.list)
	if err != nil {
		return nil, err
	}
	if req.strength.Words == 0 && src.Len() > 1 {
		need := diceware.EffectiveMinEntropy(req.strength) / diceware.BitsPerWord(src.Len())
		if need > float64(s.cfg.MaxWords) {
			return nil, fmt.Errorf("entropy target needs more than the maximum of %d words", s.cfg.MaxWords)
		}
	}
	g, err := diceware.NewGenerator(src, req.strength, req.sep, req.title)
	if err != nil {
		return nil, err
	}
	if g.Words > s.cfg.MaxWords {
		return nil, fmt.Errorf("word count %d exceeds maximum of %d", g.Words, s.cfg.MaxWords)
	}
	return g, nil
}

func (s *Server) source(code string) (wordlist.Source, error) {
	switch {
	case code == "" && s.cfg.Custom != nil:
		return s.cfg.Custom, nil
	case code == "":
		return wordlist.Load(s.cfg.DefaultList)
	case strings.EqualFold(code, CustomCode):
		if s.cfg.Custom == nil {
			return nil, fmt.Errorf("%w: no custom list loaded", wordlist.ErrUnknownList)
		}
		return s.cfg.Custom, nil
	default:
		return wordlist.Lookup(code)
	}
}

func positiveInt(key, val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got '%s'", strings.ToUpper(key), val)
	}
	return n, nil
}

func positiveFloat(key, val string) (float64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%s must be a positive number, got '%s'", strings.ToUpper(key), val)
	}
	return f, nil
}

func writeErrArity(conn redcon.Conn, op op.Op) {
	conn.WriteError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", op))
}

func writeErr(conn redcon.Conn, err error) {
	conn.WriteError(fmt.Sprintf("ERR %v", err))
}
