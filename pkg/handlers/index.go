package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexPage serves the single-page client. Everything interactive happens in
// the browser against POST /api/v1/forecast; the page holds no server state.
func IndexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Inflation Forecast (with GDP Growth)</title>
<style>
  body { font-family: sans-serif; max-width: 880px; margin: 2em auto; color: #222; }
  fieldset { border: 1px solid #ccc; margin-bottom: 1em; }
  label { display: inline-block; margin: 0.3em 1em 0.3em 0; }
  input[type=number] { width: 4em; }
  #error { color: #b00020; white-space: pre-wrap; margin: 1em 0; }
  table { border-collapse: collapse; margin-top: 1em; }
  th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: right; }
  canvas { border: 1px solid #ddd; margin-top: 1em; width: 100%; }
</style>
</head>
<body>
<h1>Inflation Forecast (with GDP Growth)</h1>
<p>Upload an inflation CSV and a GDP growth CSV to forecast future inflation.</p>

<fieldset>
  <legend>Data</legend>
  <label>Inflation file <input type="file" id="inflation_file" accept=".csv,.xlsx"></label>
  <label>GDP growth file <input type="file" id="gdp_file" accept=".csv,.xlsx"></label>
</fieldset>

<fieldset>
  <legend>Forecast settings</legend>
  <label>Horizon (years, 1-10) <input type="number" id="horizon" min="1" max="10" value="5"></label><br>
  <label>Inflation AR (p, 0-5) <input type="number" id="p" min="0" max="5" value="1"></label>
  <label>Differencing (d, 0-2) <input type="number" id="d" min="0" max="2" value="1"></label>
  <label>MA (q, 0-5) <input type="number" id="q" min="0" max="5" value="1"></label><br>
  <label>GDP AR (p, 0-5) <input type="number" id="gdp_p" min="0" max="5" value="1"></label>
  <label>Differencing (d, 0-2) <input type="number" id="gdp_d" min="0" max="2" value="1"></label>
  <label>MA (q, 0-5) <input type="number" id="gdp_q" min="0" max="5" value="1"></label>
</fieldset>

<button id="run">Run forecast</button>
<div id="error"></div>
<div id="output" style="display:none">
  <h2>Historical Data</h2>
  <canvas id="history" width="860" height="320"></canvas>
  <h2>Inflation Forecast</h2>
  <canvas id="forecast" width="860" height="320"></canvas>
  <h2>Forecast Table</h2>
  <table id="table">
    <thead><tr><th>Year</th><th>Forecast (%)</th><th>Lower 95% CI</th><th>Upper 95% CI</th></tr></thead>
    <tbody></tbody>
  </table>
</div>

<script>
function drawLines(canvas, lines, band) {
  const ctx = canvas.getContext('2d');
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  let xs = [], ys = [];
  lines.forEach(l => { xs = xs.concat(l.years); ys = ys.concat(l.values); });
  if (band) { ys = ys.concat(band.lower, band.upper); }
  const xMin = Math.min(...xs), xMax = Math.max(...xs);
  const yMin = Math.min(...ys), yMax = Math.max(...ys);
  const pad = 40;
  const sx = x => pad + (x - xMin) / Math.max(1, xMax - xMin) * (canvas.width - 2 * pad);
  const sy = y => canvas.height - pad - (y - yMin) / Math.max(1e-9, yMax - yMin) * (canvas.height - 2 * pad);
  if (band) {
    ctx.beginPath();
    band.years.forEach((yr, i) => { const fx = sx(yr), fy = sy(band.upper[i]); i ? ctx.lineTo(fx, fy) : ctx.moveTo(fx, fy); });
    for (let i = band.years.length - 1; i >= 0; i--) ctx.lineTo(sx(band.years[i]), sy(band.lower[i]));
    ctx.closePath();
    ctx.fillStyle = 'rgba(100,150,250,0.3)';
    ctx.fill();
  }
  const colors = ['#1f77b4', '#ff7f0e', '#d62728'];
  lines.forEach((l, li) => {
    ctx.beginPath();
    ctx.strokeStyle = colors[li % colors.length];
    ctx.setLineDash(l.dashed ? [6, 4] : []);
    l.years.forEach((yr, i) => { const fx = sx(yr), fy = sy(l.values[i]); i ? ctx.lineTo(fx, fy) : ctx.moveTo(fx, fy); });
    ctx.stroke();
    ctx.setLineDash([]);
    ctx.fillStyle = colors[li % colors.length];
    ctx.fillText(l.name, pad + 8, pad + 14 * (li + 1));
  });
  ctx.fillStyle = '#555';
  ctx.fillText(String(xMin), pad, canvas.height - pad / 2);
  ctx.fillText(String(xMax), canvas.width - pad, canvas.height - pad / 2);
  ctx.fillText(yMax.toFixed(1), 4, pad);
  ctx.fillText(yMin.toFixed(1), 4, canvas.height - pad);
}

document.getElementById('run').addEventListener('click', async () => {
  const errBox = document.getElementById('error');
  const output = document.getElementById('output');
  errBox.textContent = '';
  output.style.display = 'none';

  const inflation = document.getElementById('inflation_file').files[0];
  const gdp = document.getElementById('gdp_file').files[0];
  if (!inflation || !gdp) { errBox.textContent = 'Error: both files are required.'; return; }

  const form = new FormData();
  form.append('inflation_file', inflation);
  form.append('gdp_file', gdp);
  ['horizon', 'p', 'd', 'q', 'gdp_p', 'gdp_d', 'gdp_q'].forEach(id =>
    form.append(id, document.getElementById(id).value));

  let body;
  try {
    const res = await fetch('/api/v1/forecast', { method: 'POST', body: form });
    body = await res.json();
    if (!res.ok || !body.success) { errBox.textContent = 'Error: ' + (body.error || res.statusText); return; }
  } catch (e) {
    errBox.textContent = 'Error: ' + e;
    return;
  }

  drawLines(document.getElementById('history'), body.historical.map(s => ({ ...s, dashed: false })));
  const histInflation = body.historical[0];
  drawLines(document.getElementById('forecast'),
    [histInflation, { ...body.forecast_line, dashed: true }], body.band);

  const tbody = document.querySelector('#table tbody');
  tbody.innerHTML = '';
  body.table.forEach(r => {
    const tr = document.createElement('tr');
    [r.year, r.forecast, r.lower_95, r.upper_95].forEach(v => {
      const td = document.createElement('td');
      td.textContent = v;
      tr.appendChild(td);
    });
    tbody.appendChild(tr);
  });
  output.style.display = '';
});
</script>
</body>
</html>
`
