package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	m "github.com/binshift/cnvmerge/internal/model"
)

// CallWriter renders consolidated calls as VCF.
type CallWriter interface {
	Write(w io.Writer, sampleName string, calls []m.Call) error
	WriteFile(path m.Path, sampleName string, calls []m.Call) error
}

type vcfWriter struct {
	source string
}

// NewVcfWriter constructs a CallWriter emitting VCF 4.1 text. The source
// string goes into the ##source header line.
func NewVcfWriter(source string) CallWriter {
	return &vcfWriter{source: source}
}

func (vw *vcfWriter) WriteFile(path m.Path, sampleName string, calls []m.Call) error {
	file, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("create VCF %s: %w", path, err)
	}

	if err := vw.Write(file, sampleName, calls); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func (vw *vcfWriter) Write(w io.Writer, sampleName string, calls []m.Call) error {
	bw := bufio.NewWriter(w)

	vw.writeHeader(bw, sampleName)

	for _, call := range calls {
		writeRecord(bw, call)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write VCF: %w", err)
	}

	return nil
}

func (vw *vcfWriter) writeHeader(bw *bufio.Writer, sampleName string) {
	fmt.Fprintln(bw, "##fileformat=VCFv4.1")
	fmt.Fprintf(bw, "##source=%s\n", vw.source)
	fmt.Fprintln(bw, `##ALT=<ID=CNV,Description="Copy number variant region">`)
	fmt.Fprintln(bw, `##ALT=<ID=LOH,Description="Loss of heterozygosity region">`)
	fmt.Fprintln(bw, `##INFO=<ID=SVTYPE,Number=1,Type=String,Description="Type of structural variant">`)
	fmt.Fprintln(bw, `##INFO=<ID=END,Number=1,Type=Integer,Description="End position of the variant">`)
	fmt.Fprintln(bw, `##INFO=<ID=CNVLEN,Number=1,Type=Integer,Description="Length of the copy number call">`)
	fmt.Fprintln(bw, `##FILTER=<ID=PASS,Description="All filters passed">`)
	fmt.Fprintln(bw, `##FORMAT=<ID=RC,Number=1,Type=Float,Description="Mean per-bin coverage">`)
	fmt.Fprintln(bw, `##FORMAT=<ID=BC,Number=1,Type=Integer,Description="Number of coverage bins">`)
	fmt.Fprintln(bw, `##FORMAT=<ID=CN,Number=1,Type=Integer,Description="Copy number">`)
	fmt.Fprintln(bw, `##FORMAT=<ID=MCC,Number=1,Type=Integer,Description="Major chromosome count">`)
	fmt.Fprintf(bw, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\t%s\n", sampleName)
}

func writeRecord(bw *bufio.Writer, call m.Call) {
	seg := call.Segment

	info := fmt.Sprintf("SVTYPE=%s;END=%d;CNVLEN=%d", call.Type.SvType(), seg.End, seg.Span())

	format := "RC:BC:CN"
	sample := strings.Join([]string{
		strconv.FormatFloat(stat.Mean(seg.Counts, nil), 'f', 2, 64),
		strconv.Itoa(seg.BinCount()),
		strconv.Itoa(seg.CopyNumber),
	}, ":")

	if seg.MajorChromosomeCount != nil {
		format += ":MCC"
		sample += ":" + strconv.Itoa(*seg.MajorChromosomeCount)
	}

	fmt.Fprintf(bw, "%s\t%d\t%s\tN\t%s\t%s\t%s\t%s\t%s\t%s\n",
		seg.Chromosome,
		seg.Begin+1,
		seg.ID(),
		call.Type.AltAllele(),
		strconv.FormatFloat(seg.QScore, 'f', -1, 64),
		seg.Filter,
		info,
		format,
		sample,
	)
}
