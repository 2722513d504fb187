package roster

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/hoopstats/internal/model"
)

const sampleCSV = `Rk;Player;Pos;Age;Tm;G;ORB;DRB;TRB;AST;STL;BLK;TOV;PTS;FG%;3P%;FT%
1;Precious Achiuwa;PF-C;24;TOT;74;2.7;4.5;7.2;1.1;0.6;0.9;0.7;7.6;.501;.268;.616
2;Bam Adebayo;C;26;MIA;71;2.2;8.1;10.4;3.9;1.1;0.9;2.3;19.3;.521;.357;.755
3;Ochai Agbaji;SG;23;TOT;78;0.9;1.8;2.8;0.9;0.6;0.6;0.8;5.8;.410;.294;.661
4;;SG;23;UTA;1;0;0;0;0;0;0;0;1.0;;;
5;No Points;C;30;LAL;3;1;1;2;0;0;0;0;;.500;;
6;Santi Aldama;PF;23;MEM;61;1.1;4.7;5.8;2.3;0.7;0.9;1.0;10.7;.435;.349;.621
`

func mustRead(t *testing.T, src string) *Table {
	t.Helper()
	tbl, err := Read(strings.NewReader(src), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return tbl
}

func TestRead_SemicolonDetectedAndRowsFiltered(t *testing.T) {
	tbl := mustRead(t, sampleCSV)

	if tbl.Len() != 4 {
		t.Fatalf("expected 4 players, got %d", tbl.Len())
	}
	if tbl.Skipped() != 2 {
		t.Errorf("expected 2 skipped rows (no name, no PTS), got %d", tbl.Skipped())
	}
	if tbl.At(0).Name != "Precious Achiuwa" || tbl.At(3).Name != "Santi Aldama" {
		t.Errorf("table order not preserved: first=%q last=%q", tbl.At(0).Name, tbl.At(3).Name)
	}
}

func TestRead_DerivedReboundsAndFields(t *testing.T) {
	tbl := mustRead(t, sampleCSV)

	bam, ok := tbl.Lookup("Bam Adebayo")
	if !ok {
		t.Fatal("Bam Adebayo not found")
	}
	if bam.Team != "MIA" || bam.Position != "C" || bam.Age != 26 {
		t.Errorf("Bam fields: team=%s pos=%s age=%d", bam.Team, bam.Position, bam.Age)
	}
	reb, _ := bam.Stat(model.TotalRebounds)
	if diff := reb - 10.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalRebounds: want ORB+DRB=10.3, got %v", reb)
	}
	fg, _ := bam.Stat(model.FGPct)
	if fg != 0.521 {
		t.Errorf("FG%%: want 0.521, got %v", fg)
	}
}

func TestRead_CommaAndMissingOptionalColumns(t *testing.T) {
	src := "Player,Tm,PTS,AST\nA,LAL,20,5\nB,BOS,30,\n"
	tbl := mustRead(t, src)
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 players, got %d", tbl.Len())
	}
	b := tbl.At(1)
	if b.Has(model.Assists) {
		t.Error("expected B.AST missing")
	}
	if b.Has(model.TotalRebounds) || b.Position != "" {
		t.Error("expected absent columns to be missing")
	}
}

func TestRead_ExplicitComma(t *testing.T) {
	// Header has more commas than semicolons, so detection alone would pick ','.
	src := "Player;PTS;a,b,c\nA;10;x\n"
	if _, err := Read(strings.NewReader(src), Options{}); err == nil {
		t.Fatal("expected detection to pick ',' and miss the Player column")
	}
	tbl, err := Read(strings.NewReader(src), Options{Comma: ';'})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 player, got %d", tbl.Len())
	}
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	if _, err := Read(strings.NewReader("Player,AST\nA,1\n"), Options{}); err == nil {
		t.Error("expected error for missing PTS column")
	}
	if _, err := Read(strings.NewReader("Name,PTS\nA,1\n"), Options{}); err == nil {
		t.Error("expected error for missing Player column")
	}
	if _, err := Read(strings.NewReader(""), Options{}); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestTeamsAndPositions(t *testing.T) {
	tbl := mustRead(t, sampleCSV)

	teams := tbl.Teams()
	want := []string{"MEM", "MIA", "TOT"}
	if strings.Join(teams, ",") != strings.Join(want, ",") {
		t.Errorf("Teams: want %v, got %v", want, teams)
	}
	pos := tbl.Positions()
	wantPos := []string{"C", "PF", "PF-C", "SG"}
	if strings.Join(pos, ",") != strings.Join(wantPos, ",") {
		t.Errorf("Positions: want %v, got %v", wantPos, pos)
	}
}

func TestPlayersIsACopy(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	ps := tbl.Players()
	ps[0].Name = "mutated"
	if tbl.At(0).Name == "mutated" {
		t.Error("Players() must not expose the backing slice")
	}
}

func TestLoad_Compressed(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte(sampleCSV))
	w.Close()
	gzPath := filepath.Join(dir, "nba.csv.gz")
	if err := os.WriteFile(gzPath, gz.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zstPath := filepath.Join(dir, "nba.csv.zst")
	if err := os.WriteFile(zstPath, enc.EncodeAll([]byte(sampleCSV), nil), 0o644); err != nil {
		t.Fatal(err)
	}
	enc.Close()

	plainPath := filepath.Join(dir, "nba.csv")
	if err := os.WriteFile(plainPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{plainPath, gzPath, zstPath} {
		tbl, err := Load(p, Options{})
		if err != nil {
			t.Errorf("Load(%s): %v", filepath.Base(p), err)
			continue
		}
		if tbl.Len() != 4 {
			t.Errorf("Load(%s): expected 4 players, got %d", filepath.Base(p), tbl.Len())
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
