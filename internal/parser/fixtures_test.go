package parser

import "strings"

const cptFixture = `#GEFID= 1, 1, 0
#FILEOWNER= Wiertsema & Partners
#FILEDATE= 2020, 3, 5
#PROCEDURECODE= GEF-CPT-Report, 1, 1, 2
#TESTID= CPT-01
#XYID= 31000, 132123.456, 457890.123, 0.01, 0.01
#ZID= 31000, 1.25, 0.01
#COLUMN= 4
#COLUMNINFO= 1, m, penetration length, 1
#COLUMNINFO= 2, MPa, cone resistance, 2
#COLUMNINFO= 3, MPa, sleeve friction, 3
#COLUMNINFO= 4, MPa, pore pressure u2, 6
#COLUMNVOID= 2, -9999.0
#COLUMNSEPARATOR= ;
#RECORDSEPARATOR= !
#MEASUREMENTVAR= 13, 1.50, m, pre-excavated depth
#EOH=
0.00;0.50;0.010;0.000;!
0.02;-9999.0;0.012;0.001;!

0.04;0.00;-0.002;0.002;!
1.00;2.00;0.040;-0.010;!
`

const boreholeFixture = `#GEFID= 1, 1, 0
#FILEDATE= 2019, 13, 1
#STARTDATE= 2019, 6, 12
#REPORTCODE= GEF-BORE-Report, 1, 0, 0
#TESTID= B-17
#XYID= 28992, 140000.004, 455000.006
#ZID= 31000, 0.85, 0.01
#COLUMN= 2
#COLUMNINFO= 1, m, laag van, 1
#COLUMNINFO= 2, m, laag tot, 2
#COLUMNSEPARATOR= ;
#RECORDSEPARATOR= !
#EOH=
0.00;0.40;'Kz1';'grijs zwak';!
0.40;1.20;'Kz1';'grijs zwak';!
1.20;2.50;'Zs1';!
2.50;3.00;'V';!
`

func fixtureLines(s string) []string {
	return strings.Split(s, "\n")
}

// withHeader builds a file from header lines and data lines
func withHeader(header []string, data ...string) []string {
	lines := append([]string{}, header...)
	lines = append(lines, "#EOH=")
	return append(lines, data...)
}
