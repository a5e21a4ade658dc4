package audio

import "testing"

func TestKillStreakFiresOnThirdQuickKill(t *testing.T) {
	k := NewKillStreak()
	if k.Kill(1.0) || k.Kill(2.5) {
		t.Fatal("streak fired before the third kill")
	}
	if !k.Kill(5.0) {
		t.Fatal("third kill within 3s of the previous one should fire")
	}
	if k.Count() != 0 {
		t.Errorf("streak not reset after firing: count=%d", k.Count())
	}
}

func TestKillStreakBreaksOnSlowKill(t *testing.T) {
	k := NewKillStreak()
	k.Kill(0)
	k.Kill(1)
	if k.Kill(4.5) {
		t.Fatal("kill 3.5s after the previous one must not complete a streak")
	}
	if k.Count() != 1 {
		t.Errorf("slow kill should start a new streak: count=%d", k.Count())
	}
}

func TestKillStreakGapExactlyWindowKeepsStreak(t *testing.T) {
	k := NewKillStreak()
	k.Kill(0)
	k.Kill(3)
	if !k.Kill(6) {
		t.Error("gaps of exactly 3s keep the streak alive")
	}
}

func TestGeneratorsStayInRange(t *testing.T) {
	for s := SoundGunshot; s < soundCount; s++ {
		gen, _ := generatorFor(s)
		buf := make([][2]float64, 4096)
		n, ok := gen.Stream(buf)
		if n != len(buf) || !ok {
			t.Fatalf("%s: Stream returned n=%d ok=%v", s, n, ok)
		}
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
				t.Fatalf("%s: sample %d out of range or not mono: %v", s, i, buf[i])
			}
		}
	}
}
